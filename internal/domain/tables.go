package domain

var Tables = []interface{}{
	// System
	&SysConfig{},
	&SysOpr{},
	// Storefront
	&Product{},
	&Category{},
	&Order{},
}
