package groups

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/rinkside/rinkside/pkg/rinkside/blob"
	"github.com/rinkside/rinkside/pkg/rinkside/models"
)

func setupTestRouter(svc *Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(svc).RegisterRoutes(r.Group("/api/groups"))
	return r
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("Failed to encode body: %v", err)
		}
	}
	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestCreateGroupEndpoint(t *testing.T) {
	svc := NewService(blob.NewMemoryStore())
	router := setupTestRouter(svc)

	resp := doJSON(t, router, "POST", "/api/groups", CreateGroupRequest{Name: "Thursday Hockey"})
	if resp.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", resp.Code, resp.Body.String())
	}

	var body struct {
		GroupID   string `json:"groupId"`
		Name      string `json:"name"`
		AdminCode string `json:"adminCode"`
	}
	json.Unmarshal(resp.Body.Bytes(), &body)
	if body.GroupID == "" || body.Name != "Thursday Hockey" || len(body.AdminCode) != 8 {
		t.Errorf("Unexpected response: %+v", body)
	}
}

func TestCreateGroupEndpointBlankName(t *testing.T) {
	router := setupTestRouter(NewService(blob.NewMemoryStore()))

	resp := doJSON(t, router, "POST", "/api/groups", CreateGroupRequest{Name: "   "})
	if resp.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", resp.Code)
	}
}

func TestJoinWithAdminCode(t *testing.T) {
	svc := NewService(blob.NewMemoryStore())
	router := setupTestRouter(svc)

	group, _ := svc.CreateGroup(context.Background(), "Thursday Hockey")

	resp := doJSON(t, router, "GET", "/api/groups/join?code="+strings.ToLower(group.AdminCode), nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var body struct {
		GroupID   string             `json:"groupId"`
		GroupName string             `json:"groupName"`
		IsAdmin   bool               `json:"isAdmin"`
		SasUrls   models.SasTokenSet `json:"sasUrls"`
	}
	json.Unmarshal(resp.Body.Bytes(), &body)
	if body.GroupID != group.ID || !body.IsAdmin {
		t.Errorf("Expected admin join, got %+v", body)
	}
	if body.SasUrls.ReadURL == "" || body.SasUrls.WriteURL == nil {
		t.Errorf("Expected read and write SAS URLs, got %+v", body.SasUrls)
	}
}

func TestJoinWithMemberCode(t *testing.T) {
	svc := NewService(blob.NewMemoryStore())
	router := setupTestRouter(svc)
	ctx := context.Background()

	group, _ := svc.CreateGroup(ctx, "Thursday Hockey")
	member, _ := svc.AddMember(ctx, group.ID, "Alex")

	resp := doJSON(t, router, "GET", "/api/groups/join?code="+member.Code, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var body struct {
		IsAdmin bool               `json:"isAdmin"`
		SasUrls models.SasTokenSet `json:"sasUrls"`
	}
	json.Unmarshal(resp.Body.Bytes(), &body)
	if body.IsAdmin {
		t.Error("Expected isAdmin false for member code")
	}
	if body.SasUrls.WriteURL == nil {
		t.Error("Expected members to receive a write URL")
	}
}

func TestJoinUnknownCode(t *testing.T) {
	router := setupTestRouter(NewService(blob.NewMemoryStore()))

	resp := doJSON(t, router, "GET", "/api/groups/join?code=NOPE1234", nil)
	if resp.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", resp.Code)
	}
}

func TestAddMemberEndpoint(t *testing.T) {
	svc := NewService(blob.NewMemoryStore())
	router := setupTestRouter(svc)

	group, _ := svc.CreateGroup(context.Background(), "Thursday Hockey")

	resp := doJSON(t, router, "POST",
		"/api/groups/"+group.ID+"/members?adminCode="+group.AdminCode,
		AddMemberRequest{Label: "Alex"})
	if resp.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", resp.Code, resp.Body.String())
	}

	var body struct {
		Code  string `json:"code"`
		Label string `json:"label"`
	}
	json.Unmarshal(resp.Body.Bytes(), &body)
	if len(body.Code) != 6 || body.Label != "Alex" {
		t.Errorf("Unexpected member response: %+v", body)
	}
}

func TestAddMemberWrongAdminCode(t *testing.T) {
	svc := NewService(blob.NewMemoryStore())
	router := setupTestRouter(svc)

	group, _ := svc.CreateGroup(context.Background(), "Thursday Hockey")

	resp := doJSON(t, router, "POST",
		"/api/groups/"+group.ID+"/members?adminCode=WRONGCODE",
		AddMemberRequest{Label: "Alex"})
	if resp.Code != http.StatusForbidden {
		t.Errorf("Expected status 403, got %d", resp.Code)
	}
}

func TestAddMemberMissingGroupEndpoint(t *testing.T) {
	router := setupTestRouter(NewService(blob.NewMemoryStore()))

	resp := doJSON(t, router, "POST",
		"/api/groups/no-such-group/members?adminCode=ABCD2345",
		AddMemberRequest{Label: "Alex"})
	if resp.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", resp.Code)
	}
}

func TestRevokeMemberEndpoint(t *testing.T) {
	svc := NewService(blob.NewMemoryStore())
	router := setupTestRouter(svc)
	ctx := context.Background()

	group, _ := svc.CreateGroup(ctx, "Thursday Hockey")
	member, _ := svc.AddMember(ctx, group.ID, "Alex")

	resp := doJSON(t, router, "DELETE",
		"/api/groups/"+group.ID+"/members/"+member.Code+"?adminCode="+group.AdminCode, nil)
	if resp.Code != http.StatusNoContent {
		t.Fatalf("Expected status 204, got %d: %s", resp.Code, resp.Body.String())
	}

	// Revoking an already unknown code is a 404.
	resp = doJSON(t, router, "DELETE",
		"/api/groups/"+group.ID+"/members/zzzzzz?adminCode="+group.AdminCode, nil)
	if resp.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", resp.Code)
	}
}

func TestRefreshSasEndpoint(t *testing.T) {
	svc := NewService(blob.NewMemoryStore())
	router := setupTestRouter(svc)
	ctx := context.Background()

	group, _ := svc.CreateGroup(ctx, "Thursday Hockey")
	member, _ := svc.AddMember(ctx, group.ID, "Alex")

	for _, code := range []string{group.AdminCode, strings.ToUpper(member.Code)} {
		resp := doJSON(t, router, "GET", "/api/groups/"+group.ID+"/sas/refresh?code="+code, nil)
		if resp.Code != http.StatusOK {
			t.Fatalf("Expected status 200 for code %q, got %d: %s", code, resp.Code, resp.Body.String())
		}
		var set models.SasTokenSet
		json.Unmarshal(resp.Body.Bytes(), &set)
		if set.ReadURL == "" || set.WriteURL == nil {
			t.Errorf("Expected full token set for %q, got %+v", code, set)
		}
	}

	resp := doJSON(t, router, "GET", "/api/groups/"+group.ID+"/sas/refresh?code=BADCODE9", nil)
	if resp.Code != http.StatusForbidden {
		t.Errorf("Expected status 403 for wrong code, got %d", resp.Code)
	}

	// Revoked members can no longer refresh.
	svc.RevokeMember(ctx, group.ID, member.Code)
	resp = doJSON(t, router, "GET", "/api/groups/"+group.ID+"/sas/refresh?code="+member.Code, nil)
	if resp.Code != http.StatusForbidden {
		t.Errorf("Expected status 403 for revoked code, got %d", resp.Code)
	}
}
