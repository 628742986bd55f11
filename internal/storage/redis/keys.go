package redis

import (
	"fmt"

	"github.com/mcoot/staffdir/internal/model"
)

// pendingMarker is written to an index key while the record it will point
// at is still being created
const pendingMarker = "pending"

// keyspace generates keys under a fixed prefix
type keyspace struct {
	prefix string
}

// all matches every key in the namespace
func (k keyspace) all() string {
	return k.prefix + ":*"
}

// accountSeq is the INCR counter for account ids
func (k keyspace) accountSeq() string {
	return fmt.Sprintf("%s:seq:account", k.prefix)
}

// employeeSeq is the INCR counter for employee ids
func (k keyspace) employeeSeq() string {
	return fmt.Sprintf("%s:seq:employee", k.prefix)
}

func (k keyspace) account(id model.AccountID) string {
	return fmt.Sprintf("%s:account:%d", k.prefix, id)
}

func (k keyspace) accountUsername(username string) string {
	return fmt.Sprintf("%s:idx:account_username:%s", k.prefix, username)
}

func (k keyspace) accountEmail(email string) string {
	return fmt.Sprintf("%s:idx:account_email:%s", k.prefix, email)
}

func (k keyspace) employee(id model.EmployeeID) string {
	return fmt.Sprintf("%s:employee:%d", k.prefix, id)
}

func (k keyspace) employeeCode(code string) string {
	return fmt.Sprintf("%s:idx:employee_code:%s", k.prefix, code)
}

func (k keyspace) employeeEmail(email string) string {
	return fmt.Sprintf("%s:idx:employee_email:%s", k.prefix, email)
}

// employees is the ZSET of employee ids scored by id, which is insertion order
func (k keyspace) employees() string {
	return fmt.Sprintf("%s:employees", k.prefix)
}
