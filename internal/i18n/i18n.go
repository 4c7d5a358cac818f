// Package i18n provides internationalization support for the fulfillment service.
// It handles translation of user-facing messages and error messages.
package i18n

import (
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
)

const (
	// DefaultLocale is the default language locale (English).
	DefaultLocale = "en"
	// AcceptLanguageHeader is the HTTP header name for language preference.
	AcceptLanguageHeader = "Accept-Language"
)

var (
	// defaultTranslator is the singleton translator instance.
	defaultTranslator *Translator
	translatorOnce    sync.Once
)

// Translator handles message translation for different locales.
type Translator struct {
	messages map[string]map[string]string
}

// NewTranslator creates a new translator with the default messages.
func NewTranslator() *Translator {
	return &Translator{
		messages: getDefaultMessages(),
	}
}

// GetTranslator returns the default singleton translator instance.
func GetTranslator() *Translator {
	translatorOnce.Do(func() {
		defaultTranslator = NewTranslator()
	})
	return defaultTranslator
}

// Translate returns the translated message for the given key and locale.
// Falls back to DefaultLocale if the locale is not found.
func (t *Translator) Translate(key, locale string) string {
	if locale == "" {
		locale = DefaultLocale
	}

	localeMessages, ok := t.messages[locale]
	if !ok {
		localeMessages = t.messages[DefaultLocale]
	}

	msg, ok := localeMessages[key]
	if !ok {
		// Fallback to default locale
		if defaultMessages := t.messages[DefaultLocale]; defaultMessages != nil {
			if fallbackMsg, exists := defaultMessages[key]; exists {
				return fallbackMsg
			}
		}
		return key
	}

	return msg
}

// GetLocale extracts the locale from the gin context.
// Checks Accept-Language header and falls back to DefaultLocale.
func GetLocale(c *gin.Context) string {
	acceptLang := c.GetHeader(AcceptLanguageHeader)
	if acceptLang == "" {
		return DefaultLocale
	}

	// Parse Accept-Language header (e.g., "en-US,en;q=0.9,pt;q=0.8")
	parts := strings.Split(acceptLang, ",")
	if len(parts) > 0 {
		lang := strings.TrimSpace(strings.Split(parts[0], ";")[0])
		// Extract base language (e.g., "en" from "en-US")
		if idx := strings.Index(lang, "-"); idx > 0 {
			lang = lang[:idx]
		}
		// Normalize to lowercase
		lang = strings.ToLower(lang)
		// Validate it's a supported locale
		if _, ok := getDefaultMessages()[lang]; ok {
			return lang
		}
	}

	return DefaultLocale
}

// getDefaultMessages returns the default message translations.
func getDefaultMessages() map[string]map[string]string {
	return map[string]map[string]string{
		"en": {
			// Error messages
			"error.invalid_request":                   "Invalid request",
			"error.invalid_request_body":              "Invalid request body",
			"error.internal_error":                    "An unexpected error occurred",
			"error.unauthorized":                      "Unauthorized",
			"error.api_key_required":                  "API key is required",
			"error.invalid_api_key":                   "Invalid API key",
			"error.forbidden":                         "Forbidden",
			"error.not_found":                         "Not found",
			"error.rate_limit_exceeded":               "Too many requests, please try again later",
			"error.conflict":                          "A request with this idempotency key is already in progress",
			"error.invalid_token":                     "Invalid or expired token",
			"error.token_required":                    "Authentication token is required",
			"error.validation.too_many_line_items":    "Too many line items in one request",
			"error.validation.empty_line_items":       "At least one line item is required",
			"error.all_lines_rejected":                "Every line item was rejected",
			"error.validation.order_id":               "order id must be a non-negative integer",
			"error.service_unavailable":               "Shipment history is unavailable",

			// Success messages
			"success.catalog_initialized": "Catalog initialized",
			"success.order_processed":     "Order fulfilled",
			"success.order_deferred":      "Order partially fulfilled, remainder deferred until restock",
			"success.restock_processed":   "Restock processed",
		},
		"pt": {
			// Error messages
			"error.invalid_request":                   "Requisição inválida",
			"error.invalid_request_body":              "Corpo da requisição inválido",
			"error.internal_error":                    "Ocorreu um erro inesperado",
			"error.unauthorized":                      "Não autorizado",
			"error.api_key_required":                  "Chave de API é obrigatória",
			"error.invalid_api_key":                   "Chave de API inválida",
			"error.forbidden":                         "Proibido",
			"error.not_found":                         "Não encontrado",
			"error.rate_limit_exceeded":               "Muitas requisições, tente novamente mais tarde",
			"error.conflict":                          "Já existe uma requisição em andamento com esta chave de idempotência",
			"error.invalid_token":                     "Token inválido ou expirado",
			"error.token_required":                    "Token de autenticação é obrigatório",
			"error.validation.too_many_line_items":    "Itens demais em uma única requisição",
			"error.validation.empty_line_items":       "Pelo menos um item é obrigatório",
			"error.all_lines_rejected":                "Todos os itens foram rejeitados",
			"error.validation.order_id":               "o id do pedido deve ser um inteiro não negativo",
			"error.service_unavailable":               "Histórico de envios indisponível",

			// Success messages
			"success.catalog_initialized": "Catálogo inicializado",
			"success.order_processed":     "Pedido atendido",
			"success.order_deferred":      "Pedido parcialmente atendido, restante aguardando reposição",
			"success.restock_processed":   "Reposição processada",
		},
		"nl": {
			// Error messages
			"error.invalid_request":                   "Ongeldig verzoek",
			"error.invalid_request_body":              "Ongeldige aanvraag body",
			"error.internal_error":                    "Er is een onverwachte fout opgetreden",
			"error.unauthorized":                      "Niet geautoriseerd",
			"error.api_key_required":                  "API-sleutel is vereist",
			"error.invalid_api_key":                   "Ongeldige API-sleutel",
			"error.forbidden":                         "Verboden",
			"error.not_found":                         "Niet gevonden",
			"error.rate_limit_exceeded":               "Te veel verzoeken, probeer het later opnieuw",
			"error.conflict":                          "Er is al een verzoek met deze idempotentiesleutel bezig",
			"error.invalid_token":                     "Ongeldig of verlopen token",
			"error.token_required":                    "Authenticatietoken is vereist",
			"error.validation.too_many_line_items":    "Te veel regels in één verzoek",
			"error.validation.empty_line_items":       "Minstens één regel is vereist",
			"error.all_lines_rejected":                "Alle regels zijn afgewezen",
			"error.validation.order_id":               "order-id moet een niet-negatief geheel getal zijn",
			"error.service_unavailable":               "Verzendgeschiedenis is niet beschikbaar",

			// Success messages
			"success.catalog_initialized": "Catalogus geïnitialiseerd",
			"success.order_processed":     "Bestelling verwerkt",
			"success.order_deferred":      "Bestelling deels verwerkt, rest wacht op aanvulling",
			"success.restock_processed":   "Aanvulling verwerkt",
		},
	}
}
