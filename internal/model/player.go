package model

type Player struct {
	ID   string `json:"id"`
	Side Side   `json:"side"`
}

type ClientPlayer struct {
	ID    string `json:"name"`
	Side  Side   `json:"side"`
	Score int    `json:"score"`
}
