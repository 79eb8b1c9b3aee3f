package sync

// Resultado contadores de uma execução de sincronização. Em caso de erro ou
// cancelamento os contadores refletem exatamente o que foi gravado antes da
// interrupção.
type Resultado struct {
	Processados int
	Novos       int
	Atualizados int
	Desativados int
	Cancelado   bool
}

// ResultadoTudo resultados por etapa da sincronização completa. Etapas não
// executadas ficam nil.
type ResultadoTudo struct {
	Clientes      *Resultado
	Parcelamentos *Resultado
	Cobrancas     *Resultado
}
