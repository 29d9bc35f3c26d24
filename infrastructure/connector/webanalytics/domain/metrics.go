package domain

// DailyRow é a linha de métricas diárias por origem de tráfego devolvida
// pela API de analytics
type DailyRow struct {
	Date        string `json:"date"`
	Source      string `json:"source"`
	Sessions    int64  `json:"sessions"`
	Pageviews   int64  `json:"pageviews"`
	Conversions int64  `json:"conversions"`
}
