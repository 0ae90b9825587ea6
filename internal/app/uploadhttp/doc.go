// Package uploadhttp реализует HTTP-интерфейс сервиса загрузок: три эквивалентных способа
// принять файл из multipart/form-data и записать его на локальный диск. Основные эндпоинты:
//   - POST / — потоковая передача части "file" прямо в файл; 200 "Uploaded" или 409 "Upload Failed".
//   - POST /completed — часть "file" целиком читается в память и пишется синхронно; 200 или 400.
//   - POST /bytes — сырые байты части "file" и имя из поля "fileName"; 200 или 400.
//   - GET /health — статус сервиса.
//   - POST /admin/gc — ручная очистка брошенных временных файлов.
//   - GET /metrics — метрики Prometheus.
//
// Имя файла берётся из запроса без какой-либо проверки и используется как путь назначения,
// поэтому клиент может записать файл за пределы каталога загрузок. Сервис не стоит
// выставлять наружу без внешней авторизации.
package uploadhttp
