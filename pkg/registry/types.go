// Package registry provides a client for the French company registry
// search API (recherche-entreprises.api.gouv.fr). A query returns zero or
// more ranked candidates; each candidate carries the company's legal
// identity, head-office address, and officers.
package registry

// searchResponse is the wire format of the /search endpoint.
type searchResponse struct {
	Results      []Candidate `json:"results"`
	TotalResults int         `json:"total_results"`
	Page         int         `json:"page"`
	PerPage      int         `json:"per_page"`
}

// Candidate is one registry record returned for a query, in the service's
// own relevance order.
type Candidate struct {
	Siren             string    `json:"siren"`
	NomComplet        string    `json:"nom_complet"`
	EtatAdministratif string    `json:"etat_administratif"`
	DateCreation      string    `json:"date_creation"`
	ActivitePrincipale string   `json:"activite_principale"`
	ObjetSocial       string    `json:"objet_social"`
	Description       string    `json:"description"`
	Siege             Siege     `json:"siege"`
	Dirigeants        []Officer `json:"dirigeants"`
}

// Siege is the registered head office of a candidate.
type Siege struct {
	Adresse                string `json:"adresse"`
	TrancheEffectifSalarie string `json:"tranche_effectif_salarie"`
}

// Officer is a person (or legal entity) associated with a company in the
// registry record.
type Officer struct {
	Nom              string `json:"nom"`
	Prenoms          string `json:"prenoms"`
	Qualite          string `json:"qualite"`
	AnneeDeNaissance string `json:"annee_de_naissance"`
	TypeDirigeant    string `json:"type_dirigeant"`
}

// IsCorporate reports whether the officer is a legal entity rather than a
// natural person.
func (o Officer) IsCorporate() bool {
	return o.TypeDirigeant == "personne morale" || o.TypeDirigeant == "personne_morale"
}

// CreationYear returns the year component of the candidate's creation date,
// or "" when the registry has no date.
func (c Candidate) CreationYear() string {
	if len(c.DateCreation) < 4 {
		return ""
	}
	return c.DateCreation[:4]
}
