package store

import (
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
)

// ErrQuery indica falha ao executar uma consulta no banco
var ErrQuery = errors.New("erro ao consultar banco de dados")

// ErrorCode extrai o número do erro MySQL de err, ou 0 quando não houver
func ErrorCode(err error) int {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return int(mysqlErr.Number)
	}
	return 0
}

func wrap(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrQuery, op, err)
}
