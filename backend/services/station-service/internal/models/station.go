package models

// StationData is the live snapshot shown on the dashboard header and grid panel.
type StationData struct {
	TotalEVs             int     `json:"totalEVs"`
	ChargersInUse        int     `json:"chargersInUse"`
	ChargersAvailable    int     `json:"chargersAvailable"`
	GridLoad             float64 `json:"gridLoad"`
	LoadLimit            float64 `json:"loadLimit"`
	PowerConsumed        float64 `json:"powerConsumed"`
	AIStatus             string  `json:"aiStatus"`
	RevenueToday         float64 `json:"revenueToday"`
	EnergyCostToday      float64 `json:"energyCostToday"`
	CostSavingsAI        float64 `json:"costSavingsAI"`
	PeakAvoidanceSavings float64 `json:"peakAvoidanceSavings"`
}

// RevenueReport extends StationData with derived profit figures.
type RevenueReport struct {
	StationData
	TotalProfit  string `json:"totalProfit"`
	SavingsSolar string `json:"savingsSolar"`
}
