package services

import (
	"context"
	"slices"
	"time"

	"github.com/jonasbrito1/LicitaSis-sub003/internal/models"
	"github.com/jonasbrito1/LicitaSis-sub003/internal/observability"
)

// Action é uma operação sobre um recurso
type Action string

const (
	ActionView   Action = "view"
	ActionEdit   Action = "edit"
	ActionCreate Action = "create"
	ActionDelete Action = "delete"
)

// Níveis de permissão dos usuários
const (
	RoleAdministrador = "Administrador"
	RoleNivel1        = "Usuario_Nivel_1"
	RoleNivel2        = "Usuario_Nivel_2"
	RoleNivel3        = "Usuario_Nivel_3"
	RoleInvestidor    = "Investidor"
)

// Recursos (páginas) controlados por permissão
const (
	ResourceClientes        = "clientes"
	ResourceProdutos        = "produtos"
	ResourceEmpenhos        = "empenhos"
	ResourceCompras         = "compras"
	ResourceVendas          = "vendas"
	ResourceFornecedores    = "fornecedores"
	ResourceFinanceiro      = "financeiro"
	ResourceTransportadoras = "transportadoras"
	ResourceAtividades      = "atividades"
)

var (
	operacionais = []string{ResourceClientes, ResourceProdutos, ResourceEmpenhos, ResourceCompras, ResourceVendas, ResourceFornecedores}
	gerenciais   = append(slices.Clone(operacionais), ResourceFinanceiro, ResourceTransportadoras)
)

// defaultPermissions vale quando page_permissions não tem linha para o nível e o recurso
var defaultPermissions = map[string]map[Action][]string{
	RoleNivel1: {
		ActionView: operacionais,
	},
	RoleNivel2: {
		ActionView:   gerenciais,
		ActionEdit:   operacionais,
		ActionCreate: operacionais,
		ActionDelete: {ResourceProdutos},
	},
	RoleNivel3: {
		ActionView:   gerenciais,
		ActionEdit:   append(slices.Clone(operacionais), ResourceTransportadoras),
		ActionCreate: append(slices.Clone(operacionais), ResourceTransportadoras),
		ActionDelete: {ResourceProdutos, ResourceFornecedores},
	},
	RoleInvestidor: {
		ActionView: {ResourceFinanceiro},
	},
}

// Authorizer decide se um nível de permissão pode executar uma ação num recurso
type Authorizer interface {
	Can(ctx context.Context, role, resource string, action Action) bool
}

// PermissionStore lê a tabela page_permissions
type PermissionStore interface {
	PagePermission(ctx context.Context, level, page string) (*models.PagePermission, error)
}

// PermissionService implementa Authorizer sobre page_permissions, com cache e permissões padrão
type PermissionService struct {
	store PermissionStore
	cache *LRUCache[bool]
	ttl   time.Duration
}

// NewPermissionService cria o serviço. ttl zero desativa o cache.
func NewPermissionService(store PermissionStore, cacheSize int, ttl time.Duration) *PermissionService {
	return &PermissionService{
		store: store,
		cache: NewLRUCache[bool](cacheSize),
		ttl:   ttl,
	}
}

// Can aplica, em ordem: administrador, atividades exclusivas de administrador,
// linha de page_permissions e, por último, as permissões padrão
func (s *PermissionService) Can(ctx context.Context, role, resource string, action Action) bool {
	if role == RoleAdministrador {
		return true
	}
	if role == "" || resource == ResourceAtividades {
		return false
	}

	key := role + "|" + resource + "|" + string(action)
	if s.ttl > 0 {
		if allowed, ok := s.cache.Get(key); ok {
			return allowed
		}
	}

	perm, err := s.store.PagePermission(ctx, role, resource)
	if err != nil {
		// Falha na consulta usa as permissões padrão, sem guardar no cache
		observability.WithContext(ctx).Warn("falha ao consultar page_permissions, usando permissões padrão",
			"role", role, "resource", resource, "error", err)
		return DefaultPermission(role, resource, action)
	}

	var allowed bool
	if perm != nil {
		allowed = perm.Allows(string(action))
	} else {
		allowed = DefaultPermission(role, resource, action)
	}

	if s.ttl > 0 {
		s.cache.Set(key, allowed, s.ttl)
	}
	return allowed
}

// InvalidateCache descarta as decisões guardadas
func (s *PermissionService) InvalidateCache() {
	s.cache.Clear()
}

// DefaultPermission consulta a matriz padrão de permissões
func DefaultPermission(role, resource string, action Action) bool {
	if role == RoleAdministrador {
		return true
	}
	return slices.Contains(defaultPermissions[role][action], resource)
}

// StartCacheCleanup remove periodicamente as decisões expiradas do cache
func (s *PermissionService) StartCacheCleanup(interval time.Duration) *time.Ticker {
	return s.cache.StartCleanupRoutine(interval)
}
