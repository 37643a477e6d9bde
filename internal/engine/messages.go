package engine

import "fmt"

// Fault is a statement-level failure whose text is shown to the user
// verbatim, prompt-prefixed, as a single line. A fault aborts the current
// statement with no partial persistence; the session continues.
type Fault string

func (f Fault) Error() string { return string(f) }

// DDL faults.
const (
	faultTableExists        Fault = "Create table has failed: table with the same name already exists"
	faultDuplicateColumnDef Fault = "Create table has failed: column definition is duplicated"
	faultDuplicatePKDef     Fault = "Create table has failed: primary key definition is duplicated"
	faultCharLength         Fault = "Char length should be over 0"
	faultReferenceType      Fault = "Create table has failed: foreign key references wrong type"
	faultReferenceNonPK     Fault = "Create table has failed: foreign key references non primary key column"
	faultReferenceColumn    Fault = "Create table has failed: foreign key references non existing column"
	faultReferenceTable     Fault = "Create table has failed: foreign key references non existing table"
	faultNoSuchTable        Fault = "No such table"
)

func faultNonExistingColumnDef(column string) Fault {
	return Fault(fmt.Sprintf("Create table has failed: '%s' does not exists in column definition", column))
}

func faultDropReferenced(table string) Fault {
	return Fault(fmt.Sprintf("Drop table has failed: '%s' is referenced by other table", table))
}

// INSERT faults.
const (
	faultInsertTypeMismatch Fault = "Insertion has failed: Types are not matched"
	faultInsertDuplicatePK  Fault = "Insertion has failed: Primary key duplication"
	faultInsertRefIntegrity Fault = "Insertion has failed: Referential integrity violation"
)

func faultInsertColumnExistence(column string) Fault {
	return Fault(fmt.Sprintf("Insertion has failed: '%s' does not exist", column))
}

func faultInsertNotNullable(column string) Fault {
	return Fault(fmt.Sprintf("Insertion has failed: '%s' is not nullable", column))
}

// UPDATE faults.
const (
	faultUpdateTypeMismatch Fault = "Update has failed: Types are not matched"
	faultUpdateDuplicatePK  Fault = "Update has failed: Primary key duplication"
	faultUpdateRefIntegrity Fault = "Update has failed: Referential integrity violation"
)

func faultUpdateColumnExistence(column string) Fault {
	return Fault(fmt.Sprintf("Update has failed: '%s' does not exist", column))
}

func faultUpdateNotNullable(column string) Fault {
	return Fault(fmt.Sprintf("Update has failed: '%s' is not nullable", column))
}

// SELECT faults.
func faultSelectTableExistence(table string) Fault {
	return Fault(fmt.Sprintf("Selection has failed: '%s' does not exist", table))
}

func faultSelectColumnResolve(name string) Fault {
	return Fault(fmt.Sprintf("Selection has failed: failed to resolve '%s'", name))
}

func faultNotUniqueAlias(name string) Fault {
	return Fault(fmt.Sprintf("Not unique table/alias: '%s'", name))
}

// WHERE faults; these surface up through the DML executors.
const (
	faultWhereIncomparable      Fault = "Where clause try to compare incomparable values"
	faultWhereTableNotSpecified Fault = "Where clause try to reference tables which are not specified"
	faultWhereColumnNotExist    Fault = "Where clause try to reference non existing column"
	faultWhereAmbiguous         Fault = "Where clause contains ambiguous reference"
)

// Success messages.
func msgCreated(table string) string { return fmt.Sprintf("'%s' table is created", table) }
func msgDropped(table string) string { return fmt.Sprintf("'%s' table is dropped", table) }

const msgInserted = "The row is inserted"

func msgDeleted(n int) string { return fmt.Sprintf("%d row(s) are deleted", n) }
func msgUpdated(n int) string { return fmt.Sprintf("%d row(s) are updated", n) }

func msgDeleteSkipped(n int) string {
	return fmt.Sprintf("%d row(s) are not deleted due to referential integrity", n)
}
