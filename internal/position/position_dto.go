package position

type PositionRecord struct {
	Name string `json:"name"`
	Icon string `json:"icon"`
}

type ReplaceAllPositionsRequest struct {
	Positions []PositionRecord `json:"positions" binding:"required"`
}

type PositionResponse struct {
	Name string `json:"name"`
	Icon string `json:"icon"`
}
