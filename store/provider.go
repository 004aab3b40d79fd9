package store

import "github.com/google/wire"

// ProviderSet provides *Store. Injectors bind TaskService to a concrete client.
var ProviderSet = wire.NewSet(New)
