package client

import "github.com/google/wire"

// ProviderSet provides *Client from the client config section.
var ProviderSet = wire.NewSet(NewFromConfig)
