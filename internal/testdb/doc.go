// Package testdb provides helpers for database integration tests.
//
// Tests that need PostgreSQL call GetTestDBWithT, which skips the test when
// DATABASE_URL (or CARDFLOW_TEST_DB_URL) is not set, migrates the schema and
// closes the connection on cleanup. WithTx runs a test body in a transaction
// that is always rolled back, so tests can run in parallel:
//
//	func TestSomething(t *testing.T) {
//	    db := testdb.GetTestDBWithT(t)
//	    testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
//	        s := postgres.NewPostgresFlagStore(tx)
//	        ...
//	    })
//	}
package testdb
