package copro

import "slices"

// DocumentType é a categoria fechada do documento.
type DocumentType string

const (
	DocMinutesAG          DocumentType = "PV Assemblée Générale"
	DocConvocationAG      DocumentType = "Convocation AG"
	DocAnnexAG            DocumentType = "Annexe AG"
	DocBudget             DocumentType = "Budget"
	DocAccountStatement   DocumentType = "Relevé Comptable Global"
	DocArrears            DocumentType = "État des Impayés"
	DocProviderContract   DocumentType = "Contrat Prestataire"
	DocProviderInvoice    DocumentType = "Facture Prestataire"
	DocQuote              DocumentType = "Devis"
	DocLegal              DocumentType = "Document Juridique"
	DocCoproRegulation    DocumentType = "Règlement de Copropriété"
	DocInternalRegulation DocumentType = "Règlement Intérieur"
	DocOfficialNote       DocumentType = "Note Officielle"
	DocImportantNotice    DocumentType = "Communication Importante"
	DocTechnicalReport    DocumentType = "Rapport Technique"
	DocOtherPublic        DocumentType = "Autre (Public)"
	DocOtherInternal      DocumentType = "Autre (Interne)"
	DocPersonalStatement  DocumentType = "Mon Relevé de Compte"
	DocPaymentReceipt     DocumentType = "Reçu de Paiement"
)

var documentTypes = []DocumentType{
	DocMinutesAG, DocConvocationAG, DocAnnexAG,
	DocBudget, DocAccountStatement, DocArrears,
	DocProviderContract, DocProviderInvoice, DocQuote,
	DocLegal, DocCoproRegulation, DocInternalRegulation,
	DocOfficialNote, DocImportantNotice,
	DocTechnicalReport,
	DocOtherPublic, DocOtherInternal,
	DocPersonalStatement, DocPaymentReceipt,
}

// IsValidDocumentType verifica pertencimento à enumeração.
func IsValidDocumentType(t DocumentType) bool {
	return slices.Contains(documentTypes, t)
}

// Abas da tela de documentos.
const (
	DocTabAll     = "all"
	DocTabAG      = "ag"
	DocTabFinance = "finance"
	DocTabLegal   = "legal"
	DocTabTech    = "tech"
)

var documentTabs = map[string][]DocumentType{
	DocTabAG:      {DocMinutesAG, DocConvocationAG, DocAnnexAG},
	DocTabFinance: {DocBudget, DocAccountStatement, DocProviderInvoice, DocArrears},
	DocTabLegal:   {DocCoproRegulation, DocProviderContract, DocLegal},
	DocTabTech:    {DocTechnicalReport, DocQuote},
}

// InDocumentTab indica se o tipo pertence à aba; "all" e abas
// desconhecidas aceitam tudo.
func InDocumentTab(tab string, t DocumentType) bool {
	types, ok := documentTabs[tab]
	if !ok {
		return true
	}
	return slices.Contains(types, t)
}

// IsPublicNotice indica regulamentos e notas oficiais.
func IsPublicNotice(t DocumentType) bool {
	return t == DocCoproRegulation || t == DocOfficialNote || t == DocInternalRegulation
}

// Document é um arquivo do condomínio.
type Document struct {
	ID               string       `json:"id" validate:"required"`
	CoproprieteID    string       `json:"copropriete_id" validate:"required"`
	UploadedByUserID string       `json:"uploaded_by_user_id"`
	Type             DocumentType `json:"type" validate:"required,doctype"`
	Title            string       `json:"title" validate:"required"`
	Description      string       `json:"description,omitempty"`
	URL              string       `json:"url"`
	Size             string       `json:"size"`
	DateUpload       Timestamp    `json:"date_upload" validate:"required"`
	DateDocument     *Timestamp   `json:"date_document,omitempty"`
	VisibleToOwners  bool         `json:"is_visible_to_owners"`
	AGID             string       `json:"ag_id,omitempty"`
	ProviderID       string       `json:"provider_id,omitempty"`
	InterventionID   string       `json:"intervention_id,omitempty"`
	LotID            string       `json:"lot_id,omitempty"`
	OwnerID          string       `json:"owner_id,omitempty"`
}
