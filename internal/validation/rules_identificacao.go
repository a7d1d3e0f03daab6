package validation

import (
	"regexp"

	"github.com/jonasbrito1/LicitaSis-sub003/internal/models"
)

const (
	numeroMinLength = 3
	numeroMaxLength = 50
)

var numeroCharset = regexp.MustCompile(`^[A-Za-z0-9\-/_.]+$`)

// checkDuplicateEmpenho acusa empenho já cadastrado com o mesmo número e UASG
func checkDuplicateEmpenho(sub *models.EmpenhoSubmission, lk *Lookups) []models.Finding {
	numero, _ := models.Trimmed(sub.Numero)
	uasg, _ := models.Trimmed(sub.UASG)
	if numero == "" || uasg == "" || lk == nil || lk.ExistingEmpenho == nil {
		return nil
	}

	existing := lk.ExistingEmpenho
	return []models.Finding{
		models.NewError("numero", "Número do empenho já existe para esta UASG", models.DuplicateDetails{
			Cliente:      existing.ClienteNome,
			DataCadastro: existing.CreatedAt.Format("02/01/2006 15:04"),
		}),
	}
}

// checkNumeroFormat valida tamanho e caracteres do número do empenho
func checkNumeroFormat(sub *models.EmpenhoSubmission, _ *Lookups) []models.Finding {
	numero, _ := models.Trimmed(sub.Numero)
	if numero == "" {
		return nil
	}

	var findings []models.Finding

	if len(numero) < numeroMinLength {
		findings = append(findings, models.NewWarning("numero", "Número do empenho muito curto"))
	} else if len(numero) > numeroMaxLength {
		findings = append(findings, models.NewError("numero", "Número do empenho muito longo (máx. 50 caracteres)"))
	}

	if !numeroCharset.MatchString(numero) {
		findings = append(findings, models.NewWarning("numero", "Número contém caracteres especiais"))
	}

	return findings
}

// checkUASG exige a UASG, confere o cadastro do cliente e o formato do código
func checkUASG(sub *models.EmpenhoSubmission, lk *Lookups) []models.Finding {
	uasg, present := models.Trimmed(sub.UASG)
	if !present {
		return nil
	}
	if uasg == "" {
		return []models.Finding{models.NewError("uasg", "UASG é obrigatória")}
	}

	var findings []models.Finding

	if lk != nil && lk.Client != nil {
		findings = append(findings, models.NewInfo("cliente", "Cliente encontrado no cadastro", models.ClientDetails{
			NomeOrgaos: lk.Client.NomeOrgaos,
			CNPJ:       lk.Client.CNPJ,
			Endereco:   lk.Client.Endereco,
			Telefone:   lk.Client.Telefone,
		}))
	} else {
		findings = append(findings, models.NewWarning("uasg", "UASG não encontrada no cadastro de clientes"))
	}

	if !isDigits(uasg) {
		findings = append(findings, models.NewWarning("uasg", "UASG deve conter apenas números"))
	} else if len(uasg) < 5 || len(uasg) > 6 {
		findings = append(findings, models.NewWarning("uasg", "UASG deve ter 5 ou 6 dígitos"))
	}

	return findings
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
