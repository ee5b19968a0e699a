package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/openmined/drivemirror/internal/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func TestLoginCommand_AlreadyLoggedIn(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, auth.SaveToken(filepath.Join(dir, "token.json"), &oauth2.Token{
		AccessToken:  "access",
		RefreshToken: "refresh",
	}))

	out, err := execute(t, "login")
	require.NoError(t, err)
	assert.Contains(t, out, "Already logged in")
	assert.Contains(t, out, filepath.Join(dir, "token.json"))
}

func TestLoginCommand_MissingCredentials(t *testing.T) {
	isolate(t)

	_, err := execute(t, "login")
	assert.ErrorIs(t, err, os.ErrNotExist)
}
