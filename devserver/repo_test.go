package devserver_test

import "github.com/jrsteele09/go-auth-client/users"

type panickingRepo struct{}

func (panickingRepo) Insert(*users.User) error               { panic("insert") }
func (panickingRepo) Delete(string) error                    { panic("delete") }
func (panickingRepo) GetByEmail(string) (*users.User, error) { panic("get") }
func (panickingRepo) GetByID(string) (*users.User, error)    { panic("get") }
func (panickingRepo) SetLastLogin(string) error              { panic("last login") }
func (panickingRepo) Count() int                             { panic("count") }
