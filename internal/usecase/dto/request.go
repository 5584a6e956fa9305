package dto

// DashboardQuery - параметры отображения дашборда (вкладка и поиск по таблице)
type DashboardQuery struct {
	Tab   string `query:"tab" json:"tab" validate:"omitempty,max=16"`
	Query string `query:"q" json:"q" validate:"max=100"`
}
