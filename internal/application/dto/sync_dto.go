package dto

// SyncResponse resultado de uma sincronização individual.
type SyncResponse struct {
	Success      bool   `json:"success"`
	Message      string `json:"message,omitempty"`
	Total        int    `json:"total"`
	Novos        int    `json:"novos"`
	Atualizados  int    `json:"atualizados"`
	Desativados  int    `json:"desativados,omitempty"`
	Cancelado    bool   `json:"cancelado,omitempty"`
}

// SyncTudoResponse resultado da sincronização completa, por etapa.
type SyncTudoResponse struct {
	Success       bool          `json:"success"`
	Clientes      *SyncResponse `json:"clientes,omitempty"`
	Parcelamentos *SyncResponse `json:"parcelamentos,omitempty"`
	Cobrancas     *SyncResponse `json:"cobrancas,omitempty"`
}
