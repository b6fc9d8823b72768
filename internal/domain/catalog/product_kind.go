package catalog

// ProductKind is the closed set of goods categories the platform stores.
// Every kind maps to a fixed subset of detail fields; there is no
// open-ended subtyping.
type ProductKind string

const (
	KindBook           ProductKind = "BOOK"
	KindFood           ProductKind = "FOOD"
	KindClothing       ProductKind = "CLOTHING"
	KindElectronics    ProductKind = "ELECTRONICS"
	KindRawMaterial    ProductKind = "RAW_MATERIAL"
	KindPharmaceutical ProductKind = "PHARMACEUTICAL"
	KindCosmetic       ProductKind = "COSMETIC"
)

// AllKinds lists every valid product kind
func AllKinds() []ProductKind {
	return []ProductKind{
		KindBook, KindFood, KindClothing, KindElectronics,
		KindRawMaterial, KindPharmaceutical, KindCosmetic,
	}
}

// String returns the string representation
func (k ProductKind) String() string {
	return string(k)
}

// IsValid checks if the kind is one of the closed set
func (k ProductKind) IsValid() bool {
	switch k {
	case KindBook, KindFood, KindClothing, KindElectronics,
		KindRawMaterial, KindPharmaceutical, KindCosmetic:
		return true
	}
	return false
}

// IsPerishable reports whether the kind carries a meaningful expiration
// date. Only perishable kinds participate in expiry checks and FEFO
// ordering.
func (k ProductKind) IsPerishable() bool {
	switch k {
	case KindFood, KindPharmaceutical, KindCosmetic:
		return true
	}
	return false
}
