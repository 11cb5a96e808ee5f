package orders

// Transaction es el registro inmutable de una compra completada.
type Transaction struct {
	Purchaser  string
	PetType    string
	Store      int // 1 o 2
	PetName    string
	PurchaseID string
}

// Filter son filtros de igualdad exacta sobre los campos de una
// transacción. nil = filtro ausente.
type Filter struct {
	Purchaser  *string
	PetType    *string
	Store      *int
	PetName    *string
	PurchaseID *string
}

func (f Filter) Matches(t Transaction) bool {
	if f.Purchaser != nil && t.Purchaser != *f.Purchaser {
		return false
	}
	if f.PetType != nil && t.PetType != *f.PetType {
		return false
	}
	if f.Store != nil && t.Store != *f.Store {
		return false
	}
	if f.PetName != nil && t.PetName != *f.PetName {
		return false
	}
	if f.PurchaseID != nil && t.PurchaseID != *f.PurchaseID {
		return false
	}
	return true
}
