// Package model defines the data shared by the visitgate services: the
// authority records loaded from the static directory.
package model
