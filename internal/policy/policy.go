package policy

import "vertice.mx/concesionario/internal/model"

// Action identifies a protected operation on the API surface.
type Action string

const (
	ActionMarcaRead   Action = "marca:read"
	ActionMarcaWrite  Action = "marca:write"
	ActionMarcaDelete Action = "marca:delete"

	ActionModeloRead   Action = "modelo:read"
	ActionModeloWrite  Action = "modelo:write"
	ActionModeloDelete Action = "modelo:delete"

	ActionVehiculoRead   Action = "vehiculo:read"
	ActionVehiculoSearch Action = "vehiculo:search"
	ActionVehiculoWrite  Action = "vehiculo:write"
	ActionVehiculoDelete Action = "vehiculo:delete"

	ActionUsuarioManage    Action = "usuario:manage"
	ActionUsuarioDelete    Action = "usuario:delete"
	ActionUsuarioUpdate    Action = "usuario:update"
	ActionUsuarioUpdateRol Action = "usuario:update-rol"

	ActionProfileRead Action = "profile:read"
	ActionSignup      Action = "auth:signup"
	ActionSignin      Action = "auth:signin"
	ActionUpload      Action = "upload"
)

// Reason explains a denial; the HTTP layer maps it to 401/403/400.
type Reason string

const (
	ReasonNone            Reason = ""
	ReasonUnauthenticated Reason = "unauthenticated"
	ReasonAdminRequired   Reason = "admin_required"
	ReasonSelfDelete      Reason = "self_delete"
	ReasonSelfDemote      Reason = "self_demote"
)

type Caller struct {
	ID            uint
	Rol           string
	Authenticated bool
}

// Target carries the resource identity a mutation is aimed at, for the
// self-protection rules. Zero value means no target-specific checks apply.
type Target struct {
	UsuarioID uint
	NuevoRol  string
}

type Decision struct {
	Allowed bool
	Reason  Reason
}

var allow = Decision{Allowed: true}

func deny(r Reason) Decision {
	return Decision{Reason: r}
}

type requirement int

const (
	public requirement = iota
	authenticated
	adminOnly
)

var actionRequirement = map[Action]requirement{
	ActionMarcaRead:   public,
	ActionMarcaWrite:  adminOnly,
	ActionMarcaDelete: adminOnly,

	ActionModeloRead:   public,
	ActionModeloWrite:  authenticated,
	ActionModeloDelete: adminOnly,

	ActionVehiculoRead:   public,
	ActionVehiculoSearch: public,
	ActionVehiculoWrite:  authenticated,
	ActionVehiculoDelete: adminOnly,

	ActionUsuarioManage:    adminOnly,
	ActionUsuarioDelete:    adminOnly,
	ActionUsuarioUpdate:    adminOnly,
	ActionUsuarioUpdateRol: adminOnly,

	ActionProfileRead: authenticated,
	ActionSignup:      public,
	ActionSignin:      public,
	ActionUpload:      authenticated,
}

// Authorize decides whether caller may perform action on target.
// Self-protection is evaluated first: it denies even callers the role table
// would otherwise allow.
func Authorize(caller Caller, action Action, target Target) Decision {
	if caller.Authenticated && target.UsuarioID != 0 && target.UsuarioID == caller.ID {
		if action == ActionUsuarioDelete {
			return deny(ReasonSelfDelete)
		}
		demotes := target.NuevoRol != "" && target.NuevoRol != model.RolAdmin
		if (action == ActionUsuarioUpdate || action == ActionUsuarioUpdateRol) &&
			caller.Rol == model.RolAdmin && demotes {
			return deny(ReasonSelfDemote)
		}
	}

	req, ok := actionRequirement[action]
	if !ok {
		// Unknown actions default to the most restrictive tier.
		req = adminOnly
	}

	switch req {
	case public:
		return allow
	case authenticated:
		if !caller.Authenticated {
			return deny(ReasonUnauthenticated)
		}
		return allow
	default:
		if !caller.Authenticated {
			return deny(ReasonUnauthenticated)
		}
		if caller.Rol != model.RolAdmin {
			return deny(ReasonAdminRequired)
		}
		return allow
	}
}
