package lot

import "github.com/nash87/parkhub-sub000/pkg/txmanager"

// DBExecutor интерфейс выполнения запросов (удовлетворяют *sql.DB и *sql.Tx)
type DBExecutor = txmanager.DBExecutor
