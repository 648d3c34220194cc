// Package category maps free-text merchant descriptions to the fixed
// category taxonomy used by the report.
package category

import "strings"

// Other is the fallback category for unmatched descriptions.
const Other = "Other"

// Rule binds a lowercase keyword to a category. Rules are evaluated in
// order and the first match wins, so more specific keywords must come
// before generic ones (e.g. "amazon prime" before "amazon").
type Rule struct {
	Keyword  string
	Category string
}

// Rules is the ordered keyword table covering common Brazilian merchants.
var Rules = []Rule{
	// Subscriptions before marketplaces: "amazon prime" must not fall
	// through to the Amazon marketplace rule.
	{"amazon prime", "Assinaturas"},
	{"prime video", "Assinaturas"},
	{"netflix", "Assinaturas"},
	{"spotify", "Assinaturas"},
	{"disney", "Assinaturas"},
	{"hbo", "Assinaturas"},
	{"globoplay", "Assinaturas"},
	{"youtube", "Assinaturas"},
	{"deezer", "Assinaturas"},

	// Food delivery and eating out.
	{"ifood", "Alimentação"},
	{"rappi", "Alimentação"},
	{"restaurante", "Alimentação"},
	{"lanchonete", "Alimentação"},
	{"padaria", "Alimentação"},
	{"pizzaria", "Alimentação"},
	{"mcdonald", "Alimentação"},
	{"burger", "Alimentação"},
	{"cafeteria", "Alimentação"},

	// Groceries.
	{"supermercado", "Supermercado"},
	{"mercadinho", "Supermercado"},
	{"carrefour", "Supermercado"},
	{"pao de acucar", "Supermercado"},
	{"atacadao", "Supermercado"},
	{"assai", "Supermercado"},
	{"hortifruti", "Supermercado"},

	// Fuel before transport: "posto uber" would be fuel.
	{"posto", "Combustível"},
	{"shell", "Combustível"},
	{"ipiranga", "Combustível"},
	{"petrobras", "Combustível"},
	{"combustivel", "Combustível"},

	// Transport.
	{"uber", "Transporte"},
	{"99app", "Transporte"},
	{"99 tecnologia", "Transporte"},
	{"cabify", "Transporte"},
	{"estacionamento", "Transporte"},
	{"pedagio", "Transporte"},
	{"metro rio", "Transporte"},

	// Marketplaces.
	{"mercadolivre", "Compras"},
	{"mercado livre", "Compras"},
	{"amazon", "Compras"},
	{"magalu", "Compras"},
	{"magazine luiza", "Compras"},
	{"americanas", "Compras"},
	{"shopee", "Compras"},
	{"aliexpress", "Compras"},
	{"shein", "Compras"},
	{"casas bahia", "Compras"},

	// Telecom.
	{"vivo", "Telefonia"},
	{"claro", "Telefonia"},
	{"tim ", "Telefonia"},
	{"oi fibra", "Telefonia"},
	{"net servicos", "Telefonia"},

	// Health.
	{"farmacia", "Saúde"},
	{"drogaria", "Saúde"},
	{"droga raia", "Saúde"},
	{"drogasil", "Saúde"},
	{"pacheco", "Saúde"},
	{"unimed", "Saúde"},
	{"hospital", "Saúde"},
	{"clinica", "Saúde"},
	{"laboratorio", "Saúde"},

	// Utilities.
	{"enel", "Serviços Públicos"},
	{"light ", "Serviços Públicos"},
	{"sabesp", "Serviços Públicos"},
	{"comgas", "Serviços Públicos"},
	{"cemig", "Serviços Públicos"},
	{"copel", "Serviços Públicos"},
	{"energia", "Serviços Públicos"},

	// Fitness.
	{"smart fit", "Academia"},
	{"smartfit", "Academia"},
	{"academia", "Academia"},
	{"totalpass", "Academia"},
	{"gympass", "Academia"},
	{"wellhub", "Academia"},

	// Insurance.
	{"porto seguro", "Seguros"},
	{"seguradora", "Seguros"},
	{"seguro", "Seguros"},
}

// Categorize returns the category of the first rule whose keyword the
// lowercased description contains, or Other when nothing matches.
func Categorize(description string) string {
	lower := strings.ToLower(description)
	for _, r := range Rules {
		if strings.Contains(lower, r.Keyword) {
			return r.Category
		}
	}
	return Other
}
