// Package user models the accounts that create, list and action orders, and
// the role rules that govern what each account may do.
package user
