package domain

var Tables = []interface{}{
	// System
	&SysOpr{},
	&SysOprLog{},
	// Catalogue
	&Artist{},
	&Category{},
	&Event{},
	&EventArtist{},
	&Product{},
	&Review{},
	// Sales
	&Order{},
	&OrderItem{},
}
