package substance

// Role classifies the functional part a component plays in a mixture. The
// vocabulary is closed; serialized datasets referencing an unknown role fail
// to decode rather than degrade.
type Role string

const (
	RoleSolvent  Role = "Solvent"
	RoleSolute   Role = "Solute"
	RoleLigand   Role = "Ligand"
	RoleReceptor Role = "Receptor"
)

// IsValid reports whether the role belongs to the vocabulary.
func (r Role) IsValid() bool {
	switch r {
	case RoleSolvent, RoleSolute, RoleLigand, RoleReceptor:
		return true
	default:
		return false
	}
}
