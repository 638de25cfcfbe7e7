// Package router は、リクエストをハンドラまたは静的アセットに振り分けます。
//
// # 責務
// - パスとメソッドの組に対するハンドラの登録と検索
// - パスプレフィックスとファイルシステムの対応（マウント）の管理
// - マウントされたディレクトリからの静的ファイル配信
// - リクエストごとの振り分け（ディスパッチ）
//
// # 仕様
// - ルートはパスの完全一致、メソッドは小文字で管理する
// - 同じパスとメソッドの組は最初の登録が有効で、後の登録は無視される
// - マウントは最長プレフィックス一致で選択する
// - 登録は起動前に行う想定だが、RWMutex で保護しているので並行アクセスも安全
package router
