package booking

import "github.com/nash87/parkhub-sub000/pkg/txmanager"

// DBExecutor интерфейс выполнения запросов (удовлетворяют *sql.DB и *sql.Tx).
// Активная транзакция подхватывается из контекста через txmanager.GetExecutor.
type DBExecutor = txmanager.DBExecutor
