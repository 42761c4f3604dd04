package media

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileUpdateVariants(t *testing.T) {
	none := NoFile()
	assert.True(t, none.IsNone())
	assert.Empty(t, none.ReplacedPublicID())

	fresh := NewFile("a.png", []byte{1})
	assert.False(t, fresh.IsNone())
	assert.Equal(t, "a.png", fresh.File().Name)
	assert.Empty(t, fresh.ReplacedPublicID())

	replace := ReplaceFile("b.png", []byte{2}, "old-id")
	assert.False(t, replace.IsNone())
	assert.Equal(t, "b.png", replace.File().Name)
	assert.Equal(t, "old-id", replace.ReplacedPublicID())
}

func TestMockUploaderRoundTrip(t *testing.T) {
	m := NewMockUploader()

	assets, err := m.Upload(context.Background(), []File{
		{Name: "thumb.png", Data: []byte{1}},
		{Name: "pack.zip", Data: []byte{2}},
	})
	require.NoError(t, err)
	require.Len(t, assets, 2)
	assert.NotEqual(t, assets[0].PublicID, assets[1].PublicID)
	assert.True(t, m.Stored(assets[0].PublicID))

	require.NoError(t, m.Destroy(context.Background(), assets[0].PublicID))
	assert.False(t, m.Stored(assets[0].PublicID))
	assert.True(t, m.Stored(assets[1].PublicID))
}

func TestBlurDataURL(t *testing.T) {
	got := BlurDataURL("https://res.cloudinary.com/demo/image/upload/v1/products/thumb.png")
	assert.Equal(t, "https://res.cloudinary.com/demo/image/upload/w_10,q_10,e_blur:1000/v1/products/thumb.png", got)

	got = BlurDataURL("https://media.invalid/files/thumb.png")
	assert.Contains(t, got, "blur=1000")
	assert.Contains(t, got, "w=10")

	assert.Empty(t, BlurDataURL(""))
}

func TestCloudinaryUpload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/demo/auto/upload", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "key", r.FormValue("api_key"))
		assert.NotEmpty(t, r.FormValue("signature"))

		json.NewEncoder(w).Encode(map[string]string{
			"secure_url": "https://res.cloudinary.com/demo/image/upload/v1/thumb.png",
			"public_id":  "thumb",
		})
	}))
	defer srv.Close()

	u := NewCloudinaryUploader(CloudinaryConfig{
		BaseURL: srv.URL, CloudName: "demo", APIKey: "key", APISecret: "shh",
	})

	assets, err := u.Upload(context.Background(), []File{{Name: "thumb.png", Data: []byte{1, 2, 3}}})
	require.NoError(t, err)
	require.Len(t, assets, 1)
	assert.Equal(t, "thumb", assets[0].PublicID)
	assert.Contains(t, assets[0].BlurHash, "e_blur:1000")
}

func TestCloudinaryUpload_Upstream(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	u := NewCloudinaryUploader(CloudinaryConfig{BaseURL: srv.URL, CloudName: "demo"})

	_, err := u.Upload(context.Background(), []File{{Name: "x.png", Data: []byte{1}}})
	assert.ErrorIs(t, err, ErrUpstream)
}

func TestCloudinaryDestroy(t *testing.T) {
	var gotPublicID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/demo/image/destroy", r.URL.Path)
		require.NoError(t, r.ParseForm())
		gotPublicID = r.FormValue("public_id")
		w.Write([]byte(`{"result":"ok"}`))
	}))
	defer srv.Close()

	u := NewCloudinaryUploader(CloudinaryConfig{BaseURL: srv.URL, CloudName: "demo"})

	require.NoError(t, u.Destroy(context.Background(), "thumb"))
	assert.Equal(t, "thumb", gotPublicID)
}
