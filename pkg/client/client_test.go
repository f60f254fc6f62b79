/*
Copyright 2026 the TeamCity API Tests Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package client_test

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/go-logr/logr/testr"
	"github.com/stretchr/testify/require"

	"github.com/teamcity-api-tests/apitests/pkg/auth"
	"github.com/teamcity-api-tests/apitests/pkg/client"
	"github.com/teamcity-api-tests/apitests/pkg/models"
	"github.com/teamcity-api-tests/apitests/pkg/registry"
	"github.com/teamcity-api-tests/apitests/test/fakeserver"
)

func newPool(t *testing.T) (*fakeserver.Server, *client.Pool) {
	t.Helper()

	server := fakeserver.Start("")
	t.Cleanup(server.Close)

	pool := client.NewPool(server.URL(), auth.ForSuperUser(server.Token()),
		client.WithLogger(testr.New(t)),
		client.WithRequestLogging(true, true),
	)

	return server, pool
}

func TestCheckedCreateRecordsEntity(t *testing.T) {
	t.Parallel()

	server, pool := newPool(t)
	ctx := context.Background()
	r := registry.New(pool)

	projects := client.Checked[models.Project](pool.SuperUser(), models.Projects, r)

	created, err := projects.Create(ctx, &models.Project{ID: "test_client", Name: "test_client"})
	require.NoError(t, err)
	require.Equal(t, "test_client", created.ID)
	require.Equal(t, fakeserver.RootProjectID, created.ParentProject.ID)
	require.Equal(t, []registry.Entry{{Category: models.Projects, Identity: "test_client"}}, r.Tracked())

	read, err := projects.Read(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, created.Name, read.Name)

	report := r.DeleteAll(ctx)
	require.Empty(t, report.Failed)
	require.False(t, server.Exists(models.Projects, "test_client"))
	require.Equal(t, []fakeserver.Deletion{{Category: models.Projects, Identity: "test_client"}}, server.Deletions())
}

func TestCheckedReadReportsStatus(t *testing.T) {
	t.Parallel()

	_, pool := newPool(t)

	_, err := client.Checked[models.Project](pool.SuperUser(), models.Projects, nil).Read(context.Background(), "missing")
	require.ErrorIs(t, err, client.ErrUnexpectedStatus)

	var statusErr *client.StatusError
	require.ErrorAs(t, err, &statusErr)
	require.True(t, statusErr.NotFound())
	require.Contains(t, statusErr.Body, "Project cannot be found by external id 'missing'")
	require.Len(t, statusErr.TraceID, 32)
}

func TestUncheckedReturnsRawResponse(t *testing.T) {
	t.Parallel()

	_, pool := newPool(t)

	resp, err := pool.SuperUser().Unchecked(models.Projects).Create(context.Background(), &models.Project{ID: "test_x"})
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode())
	require.Contains(t, resp.String(), "Project name cannot be empty.")
	require.True(t, strings.HasPrefix(resp.Request.Header.Get("Traceparent"), "00-"))
}

func TestUserCredentials(t *testing.T) {
	t.Parallel()

	_, pool := newPool(t)
	ctx := context.Background()

	user, err := client.Checked[models.User](pool.SuperUser(), models.Users, nil).Create(ctx, &models.User{
		Username: "test_user",
		Password: "secret",
		Roles:    &models.Roles{Role: []models.UserRole{{RoleID: "PROJECT_DEVELOPER", Scope: "g"}}},
	})
	require.NoError(t, err)
	require.NotZero(t, user.ID)
	require.Empty(t, user.Password)

	asUser := pool.As(auth.ForUser("test_user", "secret"))
	require.Same(t, asUser, pool.As(auth.ForUser("test_user", "secret")))

	_, err = client.Checked[models.Project](asUser, models.Projects, nil).Create(ctx, &models.Project{ID: "test_owned", Name: "test_owned"})
	require.NoError(t, err)

	resp, err := asUser.Unchecked(models.Users).Create(ctx, &models.User{Username: "test_other", Password: "x"})
	require.NoError(t, err)
	require.Equal(t, http.StatusForbidden, resp.StatusCode())

	resp, err = pool.As(auth.ForUser("test_user", "wrong")).Unchecked(models.Projects).Read(ctx, "test_owned")
	require.NoError(t, err)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode())
}

func TestPoolDeleteRequiresSuperUser(t *testing.T) {
	t.Parallel()

	_, pool := newPool(t)

	err := pool.Delete(context.Background(), auth.User, models.Projects, "test_any")
	require.ErrorIs(t, err, client.ErrNoCredentials)

	err = pool.Delete(context.Background(), auth.SuperUser, models.Projects, fakeserver.RootProjectID)
	require.ErrorIs(t, err, client.ErrUnexpectedStatus)
}

func TestPoolDeleteTreatsMissingAsDeleted(t *testing.T) {
	t.Parallel()

	server, pool := newPool(t)
	ctx := context.Background()

	projects := client.Checked[models.Project](pool.SuperUser(), models.Projects, nil)

	_, err := projects.Create(ctx, &models.Project{ID: "test_parent", Name: "test_parent"})
	require.NoError(t, err)

	_, err = projects.Create(ctx, &models.Project{
		ID:            "test_child",
		Name:          "test_child",
		ParentProject: &models.ParentProject{Locator: "id:test_parent"},
	})
	require.NoError(t, err)

	require.NoError(t, pool.Delete(ctx, auth.SuperUser, models.Projects, "test_parent"))
	require.False(t, server.Exists(models.Projects, "test_child"))

	require.NoError(t, pool.Delete(ctx, auth.SuperUser, models.Projects, "test_child"))
	require.NoError(t, pool.Delete(ctx, auth.SuperUser, models.Users, "42"))
}
