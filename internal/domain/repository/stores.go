package repository

// Stores agrupa los repositorios atados a una misma transacción.
type Stores struct {
	Products  ProductRepository
	Lots      LotRepository
	Movements MovementRepository
	Entries   EntryRepository
	Exits     ExitRepository
	Sales     SaleRepository
	Returns   ReturnRepository
}

// Catalog agrupa los repositorios de lectura y altas simples fuera de transacción.
type Catalog struct {
	Stores
	Jefes     JefeRepository
	Clients   ClientRepository
	Suppliers SupplierRepository
	History   HistoryRepository
}
