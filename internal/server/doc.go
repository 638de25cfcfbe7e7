// Package server は、TCPコネクションの受け付けとリクエスト処理を管理します。
//
// このパッケージは、リスナーの起動、コネクションごとのゴルーチン生成、
// ハンドラとアセットマウントの登録、管理APIの提供を担当します。
//
// 責務:
//   - TCPリスナーの起動と受け付けループ
//   - コネクションごとの 読み込み → 解析 → 振り分け → 書き込み
//   - ハンドラ、静的アセットの登録窓口
//   - 管理API（ヘルスチェック、状態、ルート一覧、OpenAPI）の提供
//
// 仕様:
//   - 1コネクションにつき1リクエストを処理して切断する（keep-alive なし）
//   - 管理APIは gin を使用し、別ポートで待ち受ける
//   - グレースフルシャットダウンに対応
//   - 処理中のエラーは可能な限り 400/500 のレスポンスとして返す
package server
