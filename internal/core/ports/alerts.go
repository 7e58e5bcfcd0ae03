package ports

// StockAlert describes an inventory item that dropped to or below the
// low-stock threshold.
type StockAlert struct {
	RecordID string
	Item     string
	Quantity int
	Category string
}
