package driver

import (
	stddriver "database/sql/driver"

	"github.com/sqlshield/sqlshield/pkg/interceptor"
)

// Wrap returns a validating shim over next, suitable for sql.Register under a
// new name: sql.Register("mysql-validated", driver.Wrap(&mysql.MySQLDriver{}, base, "primary")).
func Wrap(next stddriver.Driver, base *interceptor.Base, datasource string) *Driver {
	return &Driver{Next: next, Base: base, Datasource: datasource}
}
