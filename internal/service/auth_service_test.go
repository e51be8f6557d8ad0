package service

import (
	"context"
	"testing"

	"github.com/Jcgmtxt/aquashield/internal/config"
	"github.com/Jcgmtxt/aquashield/internal/dto"
	"github.com/Jcgmtxt/aquashield/internal/model"
	"github.com/Jcgmtxt/aquashield/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type stubUsuarioRepo struct {
	usuarios map[uuid.UUID]*model.Usuario
}

var _ repository.UsuarioRepository = (*stubUsuarioRepo)(nil)

func newStubUsuarioRepo(usuarios ...*model.Usuario) *stubUsuarioRepo {
	r := &stubUsuarioRepo{usuarios: make(map[uuid.UUID]*model.Usuario)}
	for _, u := range usuarios {
		if u.ID == uuid.Nil {
			u.ID = uuid.New()
		}
		r.usuarios[u.ID] = u
	}
	return r
}

func (r *stubUsuarioRepo) Create(_ context.Context, u *model.Usuario) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.usuarios[u.ID] = u
	return nil
}

func (r *stubUsuarioRepo) FindByUsername(_ context.Context, username string) (*model.Usuario, error) {
	for _, u := range r.usuarios {
		if u.Username == username && u.Activo {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUsuarioRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Usuario, error) {
	u, ok := r.usuarios[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (r *stubUsuarioRepo) List(_ context.Context, incluirInactivos bool) ([]model.Usuario, error) {
	var out []model.Usuario
	for _, u := range r.usuarios {
		if !incluirInactivos && !u.Activo {
			continue
		}
		out = append(out, *u)
	}
	return out, nil
}

func (r *stubUsuarioRepo) Update(_ context.Context, u *model.Usuario) error {
	r.usuarios[u.ID] = u
	return nil
}

func (r *stubUsuarioRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	if u, ok := r.usuarios[id]; ok {
		u.Activo = false
	}
	return nil
}

func (r *stubUsuarioRepo) Reactivar(_ context.Context, id uuid.UUID) error {
	if u, ok := r.usuarios[id]; ok {
		u.Activo = true
	}
	return nil
}

func testAuthConfig() *config.Config {
	return &config.Config{
		JWTSecret:          "secreto-de-prueba",
		JWTExpirationHours: 1,
		JWTRefreshHours:    24,
	}
}

func usuarioDePrueba(t *testing.T, rol string) *model.Usuario {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("clave1234"), bcrypt.MinCost)
	require.NoError(t, err)
	return &model.Usuario{
		Username:     "asesor1",
		Nombre:       "Asesor Uno",
		PasswordHash: string(hash),
		Rol:          rol,
		Activo:       true,
	}
}

func TestLogin(t *testing.T) {
	user := usuarioDePrueba(t, "asesor")
	svc := NewAuthService(newStubUsuarioRepo(user), testAuthConfig())

	resp, err := svc.Login(context.Background(), dto.LoginRequest{
		Username: "asesor1",
		Password: "clave1234",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, 3600, resp.ExpiresIn)
	assert.Equal(t, "asesor", resp.User.Rol)
}

func TestLoginCredencialesInvalidas(t *testing.T) {
	user := usuarioDePrueba(t, "asesor")
	svc := NewAuthService(newStubUsuarioRepo(user), testAuthConfig())

	_, err := svc.Login(context.Background(), dto.LoginRequest{
		Username: "asesor1",
		Password: "otra-clave",
	})
	assert.Error(t, err)

	_, err = svc.Login(context.Background(), dto.LoginRequest{
		Username: "nadie",
		Password: "clave1234",
	})
	assert.Error(t, err)
}

func TestLoginUsuarioInactivo(t *testing.T) {
	user := usuarioDePrueba(t, "asesor")
	user.Activo = false
	svc := NewAuthService(newStubUsuarioRepo(user), testAuthConfig())

	_, err := svc.Login(context.Background(), dto.LoginRequest{
		Username: "asesor1",
		Password: "clave1234",
	})
	assert.Error(t, err)
}

func TestRefresh(t *testing.T) {
	user := usuarioDePrueba(t, "supervisor")
	repo := newStubUsuarioRepo(user)
	svc := NewAuthService(repo, testAuthConfig())

	login, err := svc.Login(context.Background(), dto.LoginRequest{
		Username: "asesor1",
		Password: "clave1234",
	})
	require.NoError(t, err)

	renovado, err := svc.Refresh(context.Background(), login.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, renovado.AccessToken)
	assert.Equal(t, user.ID.String(), renovado.User.ID)
}

func TestRefreshUsuarioDesactivado(t *testing.T) {
	user := usuarioDePrueba(t, "asesor")
	repo := newStubUsuarioRepo(user)
	svc := NewAuthService(repo, testAuthConfig())

	login, err := svc.Login(context.Background(), dto.LoginRequest{
		Username: "asesor1",
		Password: "clave1234",
	})
	require.NoError(t, err)

	require.NoError(t, svc.DesactivarUsuario(context.Background(), user.ID))

	_, err = svc.Refresh(context.Background(), login.RefreshToken)
	assert.Error(t, err)
}

func TestRefreshTokenInvalido(t *testing.T) {
	svc := NewAuthService(newStubUsuarioRepo(), testAuthConfig())

	_, err := svc.Refresh(context.Background(), "no-es-un-jwt")
	assert.Error(t, err)
}

func TestCrearUsuarioNoExponeElHash(t *testing.T) {
	repo := newStubUsuarioRepo()
	svc := NewAuthService(repo, testAuthConfig())

	resp, err := svc.CrearUsuario(context.Background(), dto.CrearUsuarioRequest{
		Username: "nuevo",
		Nombre:   "Usuario Nuevo",
		Password: "clave-segura-8",
		Rol:      "asesor",
	})
	require.NoError(t, err)
	assert.True(t, resp.Activo)

	stored, err := repo.FindByUsername(context.Background(), "nuevo")
	require.NoError(t, err)
	assert.NotEqual(t, "clave-segura-8", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("clave-segura-8")))
}

func TestListarUsuariosFiltraInactivos(t *testing.T) {
	activo := usuarioDePrueba(t, "asesor")
	inactivo := usuarioDePrueba(t, "asesor")
	inactivo.Username = "asesor2"
	inactivo.Activo = false
	svc := NewAuthService(newStubUsuarioRepo(activo, inactivo), testAuthConfig())

	solos, err := svc.ListarUsuarios(context.Background(), false)
	require.NoError(t, err)
	assert.Len(t, solos, 1)

	todos, err := svc.ListarUsuarios(context.Background(), true)
	require.NoError(t, err)
	assert.Len(t, todos, 2)
}

func TestDesactivarYReactivarUsuario(t *testing.T) {
	user := usuarioDePrueba(t, "asesor")
	repo := newStubUsuarioRepo(user)
	svc := NewAuthService(repo, testAuthConfig())

	require.NoError(t, svc.DesactivarUsuario(context.Background(), user.ID))
	assert.False(t, repo.usuarios[user.ID].Activo)

	require.NoError(t, svc.ReactivarUsuario(context.Background(), user.ID))
	assert.True(t, repo.usuarios[user.ID].Activo)
}
