package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/jonasbrito1/LicitaSis-sub003/internal/config"
	middlewares "github.com/jonasbrito1/LicitaSis-sub003/internal/middleware"
	"github.com/jonasbrito1/LicitaSis-sub003/internal/models"
	"github.com/jonasbrito1/LicitaSis-sub003/internal/observability"
	"github.com/jonasbrito1/LicitaSis-sub003/internal/services"
	"github.com/jonasbrito1/LicitaSis-sub003/internal/store"
	"github.com/jonasbrito1/LicitaSis-sub003/internal/validation"
)

// exitErr carrega o código de saída pelo caminho de erro do cobra
type exitErr struct {
	code int
	msg  string
}

func (e *exitErr) Error() string { return e.msg }

func codeError(code int, format string, args ...any) error {
	return &exitErr{code: code, msg: fmt.Sprintf(format, args...)}
}

type validarFlags struct {
	format      string
	offline     bool
	failOnError bool
}

type tokenFlags struct {
	userID     string
	name       string
	permission string
	ttl        time.Duration
}

func main() {
	root := &cobra.Command{
		Use:           "licitasis",
		Short:         "Ferramentas de linha de comando do LicitaSis",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newValidarCmd(os.Stdout), newTokenCmd(os.Stdout))

	if err := root.Execute(); err != nil {
		var ee *exitErr
		if errors.As(err, &ee) {
			fmt.Fprintln(os.Stderr, "Erro:", ee.msg)
			os.Exit(ee.code)
		}
		fmt.Fprintln(os.Stderr, "Erro:", err)
		os.Exit(1)
	}
}

func newValidarCmd(out io.Writer) *cobra.Command {
	var flags validarFlags
	cmd := &cobra.Command{
		Use:   "validar <arquivo.json>",
		Short: "Valida um empenho a partir de um arquivo JSON",
		Long: "Valida um empenho usando o mesmo motor da API. Com --offline nenhuma consulta ao banco é feita " +
			"e as regras de cadastro tratam tudo como não encontrado.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidar(cmd.Context(), args[0], flags, out)
		},
	}

	f := cmd.Flags()
	f.StringVar(&flags.format, "format", "json", "Formato de saída: json ou yaml")
	f.BoolVar(&flags.offline, "offline", false, "Não consulta o banco de dados")
	f.BoolVar(&flags.failOnError, "fail-on-error", false, "Sai com código 2 quando o empenho tem erros")
	return cmd
}

func newTokenCmd(out io.Writer) *cobra.Command {
	var flags tokenFlags
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Gera um token JWT assinado com JWT_SECRET",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			secret := os.Getenv("JWT_SECRET")
			if secret == "" {
				return codeError(3, "JWT_SECRET não definido")
			}
			token, err := middlewares.GenerateToken(flags.userID, flags.name, flags.permission, secret, flags.ttl)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(out, token)
			return err
		},
	}

	f := cmd.Flags()
	f.StringVar(&flags.userID, "user", "1", "Id do usuário (subject)")
	f.StringVar(&flags.name, "name", "", "Nome do usuário")
	f.StringVar(&flags.permission, "permission", services.RoleNivel1, "Nível de permissão")
	f.DurationVar(&flags.ttl, "ttl", 8*time.Hour, "Validade do token")
	return cmd
}

func runValidar(ctx context.Context, path string, flags validarFlags, out io.Writer) error {
	if flags.format != "json" && flags.format != "yaml" {
		return codeError(3, "formato inválido %q: use json ou yaml", flags.format)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return codeError(3, "lendo %s: %s", path, err)
	}

	var sub models.EmpenhoSubmission
	if err := json.Unmarshal(data, &sub); err != nil {
		return codeError(3, "JSON inválido em %s: %s", path, err)
	}

	cfg := config.LoadConfig()
	slog.SetDefault(observability.NewLogger(os.Stderr, cfg.LogLevel, "text"))

	var gateway services.LookupGateway = offlineGateway{}
	if !flags.offline {
		if err := cfg.Validate(); err != nil {
			return codeError(3, "%s", err)
		}
		db, err := store.Open(cfg.Database, cfg.Location())
		if err != nil {
			return codeError(4, "conectando ao MySQL: %s", err)
		}
		defer db.Close()
		gateway = db
	}

	svc := services.NewValidationService(gateway, cfg.Location())

	var resp models.ReportResponse
	report, err := svc.Validate(ctx, &sub)
	var abort *services.AbortError
	switch {
	case errors.As(err, &abort):
		resp = validation.AbortResponse(abort.Finding)
	case err != nil:
		return err
	default:
		resp = validation.ToResponse(report)
	}

	if err := writeReport(out, resp, flags.format); err != nil {
		return err
	}

	if flags.failOnError && !resp.Valid {
		return codeError(2, "empenho com %d erro(s)", len(resp.Errors))
	}
	return nil
}

// writeReport escreve o relatório com as mesmas chaves do contrato JSON
func writeReport(out io.Writer, resp models.ReportResponse, format string) error {
	if format == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	}

	raw, err := json.Marshal(resp)
	if err != nil {
		return err
	}
	var generic map[string]any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return err
	}

	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	defer enc.Close()
	return enc.Encode(generic)
}

// offlineGateway responde "não encontrado" para todas as consultas
type offlineGateway struct{}

func (offlineGateway) FindEmpenho(context.Context, string, string) (*models.EmpenhoRecord, error) {
	return nil, nil
}

func (offlineGateway) FindClientByUASG(context.Context, string) (*models.ClientRecord, error) {
	return nil, nil
}

func (offlineGateway) FindProduct(context.Context, int64) (*models.ProductRecord, error) {
	return nil, nil
}

func (offlineGateway) CountEmpenhosByPregao(context.Context, string, string) (int, error) {
	return 0, nil
}

func (offlineGateway) ClientHistory(context.Context, string) (*models.ClientHistory, error) {
	return nil, nil
}
