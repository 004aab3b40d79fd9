// Package all registers every task backend driver.
//
//	import _ "github.com/ncobase/tasklist/data/all"
package all

import (
	_ "github.com/ncobase/tasklist/data/mysql"
	_ "github.com/ncobase/tasklist/data/postgres"
	_ "github.com/ncobase/tasklist/data/redis"
	_ "github.com/ncobase/tasklist/data/sqlite"
)
