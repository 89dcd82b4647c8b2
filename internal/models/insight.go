package models

// ExtractedItem — позиция, «распознанная» в документе.
type ExtractedItem struct {
	Name  string `json:"name"`
	Qty   int    `json:"qty"`
	Price string `json:"price"`
}

// ExtractedInfo — результат мок-анализа документа.
type ExtractedInfo struct {
	Vendor   string          `json:"vendor"`
	Amount   string          `json:"amount"`
	Date     string          `json:"date"`
	PONumber string          `json:"po_number"`
	Items    []ExtractedItem `json:"items"`
}
