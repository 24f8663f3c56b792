package models

// CellTower - идентификаторы сотовой сети для определения местоположения
type CellTower struct {
	MCC int `json:"mcc"`
	MNC int `json:"mnc"`
	LAC int `json:"lac"`
	CID int `json:"cid"`
}

// Resolution - результат определения местоположения по GPS
type Resolution struct {
	Point        Point  `json:"point"`
	Address      string `json:"address,omitempty"`
	AddressFound bool   `json:"address_found"`
	Message      string `json:"message"`
}
