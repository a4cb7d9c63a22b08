package zones

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	r, err := Load(map[string]*Zone{
		"public": {Apps: []string{"blog"}},
		"admin":  {Apps: []string{"billing"}, Version: "v2", PathPrefix: "internal-admin"},
	})
	require.NoError(t, err)
	require.NotNil(t, r)

	assert.Equal(t, 2, r.Count())
	assert.Equal(t, []string{"admin", "public"}, r.Names())

	pub, ok := r.Get("public")
	require.True(t, ok)
	assert.Equal(t, "Public", pub.Title)
	assert.Equal(t, "v1", pub.Version)
	assert.Equal(t, "public", pub.PathPrefix)

	adm, ok := r.Get("admin")
	require.True(t, ok)
	assert.Equal(t, "v2", adm.Version)
	assert.Equal(t, "internal-admin", adm.PathPrefix)
}

func TestLoad_Empty(t *testing.T) {
	r, err := Load(nil)
	assert.ErrorIs(t, err, ErrNoZones)
	assert.Nil(t, r)
}

func TestLoad_EmptyName(t *testing.T) {
	_, err := Load(map[string]*Zone{"  ": {Apps: []string{"blog"}}})
	assert.ErrorIs(t, err, ErrEmptyZoneName)
}

func TestLoad_NormalizesNames(t *testing.T) {
	r, err := Load(map[string]*Zone{"Public ": {Apps: []string{"blog"}}})
	require.NoError(t, err)

	_, ok := r.Get("public")
	assert.True(t, ok)
}

func TestLoad_DuplicateNameAfterNormalization(t *testing.T) {
	_, err := Load(map[string]*Zone{
		"public":  {Apps: []string{"blog"}},
		"Public ": {Apps: []string{"users"}},
	})
	require.Error(t, err)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, KindDuplicateName, verr.Kind)
}

func TestValidate_OK(t *testing.T) {
	r, err := Load(map[string]*Zone{
		"public": {Apps: []string{"blog", "users"}},
		"admin":  {Apps: []string{"billing"}},
	})
	require.NoError(t, err)

	errs := r.Validate([]string{"blog", "users", "billing"})
	assert.Empty(t, errs)
}

func TestValidate_UnknownApp(t *testing.T) {
	r, err := Load(map[string]*Zone{
		"public": {Apps: []string{"blog", "ghost"}},
	})
	require.NoError(t, err)

	errs := r.Validate([]string{"blog"})
	require.Len(t, errs, 1)
	assert.Equal(t, KindUnknownApp, errs[0].Kind)
	assert.Equal(t, "public", errs[0].Zone)
	assert.Equal(t, "ghost", errs[0].App)
	assert.Contains(t, errs[0].Error(), "ghost")
	assert.Contains(t, errs[0].Error(), "public")
}

func TestValidate_CollectsAllViolations(t *testing.T) {
	r, err := Load(map[string]*Zone{
		"public": {Apps: []string{"blog", "ghost"}, PathPrefix: "api"},
		"mobile": {Apps: []string{"blog"}, PathPrefix: "api"},
		"admin":  {},
	})
	require.NoError(t, err)

	errs := r.Validate([]string{"blog"})

	kinds := make(map[string]int)
	for _, e := range errs {
		kinds[e.Kind]++
	}
	assert.Equal(t, 1, kinds[KindUnknownApp], "missing app reported")
	assert.Equal(t, 1, kinds[KindSharedApp], "shared app reported")
	assert.Equal(t, 1, kinds[KindDuplicatePrefix], "duplicate prefix reported")
	assert.Equal(t, 1, kinds[KindEmptyApps], "empty apps reported")
}

func TestValidationErrors_Error(t *testing.T) {
	errs := ValidationErrors{
		{Kind: KindEmptyApps, Zone: "admin"},
		{Kind: KindUnknownApp, Zone: "public", App: "ghost"},
	}
	msg := errs.Error()
	assert.Contains(t, msg, "2 zone validation error(s)")
	assert.Contains(t, msg, "admin")
	assert.Contains(t, msg, "ghost")
}

func TestSubset(t *testing.T) {
	r, err := Load(map[string]*Zone{
		"public": {Apps: []string{"blog"}},
		"admin":  {Apps: []string{"billing"}},
		"mobile": {Apps: []string{"push"}},
	})
	require.NoError(t, err)

	sub, err := r.Subset([]string{"mobile", "public"})
	require.NoError(t, err)
	require.Len(t, sub, 2)
	assert.Equal(t, "mobile", sub[0].Name)
	assert.Equal(t, "public", sub[1].Name)

	all, err := r.Subset(nil)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	_, err = r.Subset([]string{"ghost"})
	assert.ErrorIs(t, err, ErrZoneNotFound)
}

func TestRegistryIsolatedFromInput(t *testing.T) {
	raw := map[string]*Zone{"public": {Apps: []string{"blog"}}}
	r, err := Load(raw)
	require.NoError(t, err)

	// Mutating the input after Load must not leak into the registry.
	raw["public"].Title = "changed"

	z, _ := r.Get("public")
	assert.Equal(t, "Public", z.Title)
}

func TestZoneHasApp(t *testing.T) {
	z := &Zone{Apps: []string{"blog", "users"}}
	assert.True(t, z.HasApp("blog"))
	assert.False(t, z.HasApp("billing"))
}
