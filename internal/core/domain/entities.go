package domain

import (
	"fmt"
	"strings"
)

// Role represents user role in the system
type Role string

const (
	RoleDonor         Role = "Donor"
	RoleCollaborator  Role = "Collaborator"
	RoleAdministrator Role = "Administrator"
)

// ParseRole accepts the canonical names and the Portuguese ones
// (Doador, Colaborador, Administrador), case-insensitively.
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "donor", "doador":
		return RoleDonor, nil
	case "collaborator", "colaborador":
		return RoleCollaborator, nil
	case "administrator", "administrador", "admin":
		return RoleAdministrator, nil
	}
	return "", NewValidationError(fmt.Sprintf("Tipo de usuário inválido: %q.", s))
}

// PersonType classifies a donor as a natural person or a legal entity
type PersonType string

const (
	PersonIndividual   PersonType = "Individual"
	PersonOrganization PersonType = "Organization"
)

// ParsePersonType accepts Individual/Organization and Fisica/Juridica
func ParsePersonType(s string) (PersonType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "individual", "fisica", "física":
		return PersonIndividual, nil
	case "organization", "juridica", "jurídica":
		return PersonOrganization, nil
	}
	return "", NewValidationError("Tipo de pessoa inválido.")
}

// DocumentLength is the digit count required for the person type
func (p PersonType) DocumentLength() int {
	if p == PersonOrganization {
		return 14
	}
	return 11
}
