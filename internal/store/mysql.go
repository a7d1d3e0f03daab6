// Package store implementa as consultas ao banco MySQL do LicitaSis usadas
// pela validação de empenhos, pelas permissões e pela auditoria.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jonasbrito1/LicitaSis-sub003/internal/config"
	"github.com/jonasbrito1/LicitaSis-sub003/internal/models"
)

// MySQLStore executa as consultas somente leitura e a gravação da auditoria
type MySQLStore struct {
	db           *sql.DB
	queryTimeout time.Duration
}

// Open conecta ao MySQL com as configurações do pool e verifica a conexão
func Open(cfg config.DatabaseConfig, loc *time.Location) (*MySQLStore, error) {
	dsn := mysql.NewConfig()
	dsn.User = cfg.User
	dsn.Passwd = cfg.Password
	dsn.Net = "tcp"
	dsn.Addr = net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
	dsn.DBName = cfg.Name
	dsn.ParseTime = true
	dsn.Params = map[string]string{"charset": "utf8mb4"}
	if loc != nil {
		dsn.Loc = loc
	}

	db, err := sql.Open("mysql", dsn.FormatDSN())
	if err != nil {
		return nil, fmt.Errorf("erro ao conectar com MySQL: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetimeMinutes) * time.Minute)

	s := New(db, cfg.QueryTimeout())

	if err := s.Ping(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("erro ao verificar conexão MySQL: %w", err)
	}

	return s, nil
}

// New cria o store sobre uma conexão já aberta
func New(db *sql.DB, queryTimeout time.Duration) *MySQLStore {
	if queryTimeout <= 0 {
		queryTimeout = 5 * time.Second
	}
	return &MySQLStore{db: db, queryTimeout: queryTimeout}
}

// Close fecha o pool de conexões
func (s *MySQLStore) Close() error {
	return s.db.Close()
}

// Ping verifica se o banco responde dentro do timeout de consulta
func (s *MySQLStore) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	if err := s.db.PingContext(ctx); err != nil {
		return wrap("ping", err)
	}
	return nil
}

// FindEmpenho busca o empenho com o mesmo número e UASG; retorna nil quando não existe
func (s *MySQLStore) FindEmpenho(ctx context.Context, numero, uasg string) (*models.EmpenhoRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	query := `
		SELECT id, COALESCE(cliente_nome, ''), created_at
		FROM empenhos
		WHERE numero = ? AND cliente_uasg = ?
		LIMIT 1`

	record := &models.EmpenhoRecord{Numero: numero, ClienteUASG: uasg}
	err := s.db.QueryRowContext(ctx, query, numero, uasg).Scan(&record.ID, &record.ClienteNome, &record.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, wrap("empenho duplicado", err)
	}

	return record, nil
}

// FindClientByUASG busca o cliente cadastrado com a UASG; retorna nil quando não existe
func (s *MySQLStore) FindClientByUASG(ctx context.Context, uasg string) (*models.ClientRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	query := `
		SELECT id, uasg,
			COALESCE(nome_orgaos, ''),
			COALESCE(cnpj, ''),
			COALESCE(endereco, ''),
			COALESCE(telefone, ''),
			COALESCE(email, '')
		FROM clientes
		WHERE uasg = ?
		LIMIT 1`

	var c models.ClientRecord
	err := s.db.QueryRowContext(ctx, query, uasg).Scan(
		&c.ID, &c.UASG, &c.NomeOrgaos, &c.CNPJ, &c.Endereco, &c.Telefone, &c.Email,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, wrap("cliente por uasg", err)
	}

	return &c, nil
}

// FindProduct busca um produto do catálogo pelo id; retorna nil quando não existe
func (s *MySQLStore) FindProduct(ctx context.Context, id int64) (*models.ProductRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	query := `
		SELECT id,
			COALESCE(nome, ''),
			COALESCE(preco_unitario, 0),
			COALESCE(preco_venda, 0),
			COALESCE(custo_total, 0),
			COALESCE(estoque_atual, 0),
			COALESCE(estoque_minimo, 0),
			COALESCE(controla_estoque, 0),
			COALESCE(categoria, ''),
			COALESCE(unidade, '')
		FROM produtos
		WHERE id = ?`

	var (
		p               models.ProductRecord
		controlaEstoque int64
	)
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.Nome, &p.PrecoUnitario, &p.PrecoVenda, &p.CustoTotal,
		&p.EstoqueAtual, &p.EstoqueMinimo, &controlaEstoque, &p.Categoria, &p.Unidade,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, wrap("produto", err)
	}
	p.ControlaEstoque = controlaEstoque != 0

	return &p, nil
}

// CountEmpenhosByPregao conta os empenhos com o mesmo pregão e UASG
func (s *MySQLStore) CountEmpenhosByPregao(ctx context.Context, pregao, uasg string) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM empenhos WHERE pregao = ? AND cliente_uasg = ?`, pregao, uasg,
	).Scan(&count)
	if err != nil {
		return 0, wrap("empenhos por pregão", err)
	}

	return count, nil
}

// ClientHistory agrega os empenhos anteriores da UASG
func (s *MySQLStore) ClientHistory(ctx context.Context, uasg string) (*models.ClientHistory, error) {
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	query := `
		SELECT
			COUNT(*),
			COALESCE(AVG(valor_total_empenho), 0),
			COALESCE(MAX(valor_total_empenho), 0),
			MIN(created_at)
		FROM empenhos
		WHERE cliente_uasg = ?`

	var (
		h        models.ClientHistory
		primeiro sql.NullTime
	)
	err := s.db.QueryRowContext(ctx, query, uasg).Scan(&h.TotalEmpenhos, &h.ValorMedio, &h.ValorMaximo, &primeiro)
	if err != nil {
		return nil, wrap("histórico do cliente", err)
	}
	if primeiro.Valid {
		h.PrimeiroEmpenho = &primeiro.Time
	}

	return &h, nil
}

// ListEmpenhosByUASG retorna os empenhos mais recentes da UASG, do mais novo ao mais antigo
func (s *MySQLStore) ListEmpenhosByUASG(ctx context.Context, uasg string, limit int) ([]models.EmpenhoRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	query := `
		SELECT id,
			numero,
			data,
			COALESCE(valor_total_empenho, 0),
			COALESCE(classificacao, ''),
			COALESCE(pregao, ''),
			created_at
		FROM empenhos
		WHERE cliente_uasg = ?
		ORDER BY created_at DESC
		LIMIT ?`

	rows, err := s.db.QueryContext(ctx, query, uasg, limit)
	if err != nil {
		return nil, wrap("empenhos por uasg", err)
	}
	defer rows.Close()

	empenhos := []models.EmpenhoRecord{}
	for rows.Next() {
		e := models.EmpenhoRecord{ClienteUASG: uasg}
		var data sql.NullTime

		if err := rows.Scan(&e.ID, &e.Numero, &data, &e.ValorTotalEmpenho, &e.Classificacao, &e.Pregao, &e.CreatedAt); err != nil {
			return nil, wrap("empenhos por uasg", err)
		}
		if data.Valid {
			e.Data = &data.Time
		}
		empenhos = append(empenhos, e)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap("empenhos por uasg", err)
	}

	return empenhos, nil
}

// PagePermission busca a permissão configurada para o nível e a página; retorna nil quando não há linha
func (s *MySQLStore) PagePermission(ctx context.Context, level, page string) (*models.PagePermission, error) {
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	query := `
		SELECT can_view, can_edit, can_create, can_delete
		FROM page_permissions
		WHERE permission_level = ? AND page_name = ?`

	var view, edit, create, del int64
	err := s.db.QueryRowContext(ctx, query, level, page).Scan(&view, &edit, &create, &del)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, wrap("permissão de página", err)
	}

	return &models.PagePermission{
		CanView:   view != 0,
		CanEdit:   edit != 0,
		CanCreate: create != 0,
		CanDelete: del != 0,
	}, nil
}

// InsertAudit grava um registro em audit_log
func (s *MySQLStore) InsertAudit(ctx context.Context, entry models.AuditEntry) error {
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	var details sql.NullString
	if len(entry.Details) > 0 {
		raw, err := json.Marshal(entry.Details)
		if err != nil {
			return fmt.Errorf("erro ao serializar detalhes da auditoria: %w", err)
		}
		details = sql.NullString{String: string(raw), Valid: true}
	}

	var recordID sql.NullInt64
	if entry.RecordID != nil {
		recordID = sql.NullInt64{Int64: *entry.RecordID, Valid: true}
	}

	query := `
		INSERT INTO audit_log
			(user_id, user_name, action, table_name, record_id, details, ip_address, user_agent, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, NOW())`

	_, err := s.db.ExecContext(ctx, query,
		nullString(entry.UserID), nullString(entry.UserName), entry.Action, nullString(entry.Table),
		recordID, details, nullString(entry.IP), nullString(entry.UserAgent),
	)
	if err != nil {
		return wrap("auditoria", err)
	}

	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
