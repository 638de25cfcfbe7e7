// Package protocol は、HTTP/1.1 のテキストフレーミングを扱います。
//
// このパッケージは、TCPコネクションのバイト列からリクエストを組み立て、
// レスポンスをワイヤ形式のバイト列に変換する役割を持ちます。
//
// 責務:
//   - ヘッダーブロック（リクエスト行 + ヘッダー行）の読み込み
//   - リクエスト行とヘッダーの解析
//   - Content-Length に基づくボディの読み込みと読み捨て
//   - ステータスコードとレスポンスのシリアライズ
//   - 拡張子から MIME タイプへの変換
//
// 仕様:
//   - HTTP/2、chunked エンコーディング、TLS は扱わない
//   - ヘッダー名は小文字に正規化し、重複時は最初の値を採用する
//   - ヘッダーブロックのサイズ上限は設けない
package protocol
