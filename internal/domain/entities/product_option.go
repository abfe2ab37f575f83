package entities

// ProductOption is a bundle tier offered on the sales page. The option id is what orders carry as
// quantity, and it also scales the shipping fee.
type ProductOption struct {
	ID      int     `json:"id"`
	Label   string  `json:"label"`
	Price   float64 `json:"price"`
	Bottles int     `json:"bottles"`
}

func DefaultProductOptions() []ProductOption {
	return []ProductOption{
		{ID: 1, Label: "2 Amostras", Price: 0, Bottles: 0},
		{ID: 2, Label: "2 Amostras + 1 Frasco", Price: 197.00, Bottles: 1},
		{ID: 3, Label: "2 Amostras + 2 Frascos", Price: 347.00, Bottles: 2},
	}
}
