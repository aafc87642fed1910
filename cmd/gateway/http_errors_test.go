package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestHTTPStatusFromGRPC(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantMsg    string
	}{
		{name: "invalid argument", err: status.Error(codes.InvalidArgument, "bad page"), wantStatus: http.StatusBadRequest, wantCode: "INVALID_ARGUMENT", wantMsg: "bad page"},
		{name: "not found", err: status.Error(codes.NotFound, "not found"), wantStatus: http.StatusNotFound, wantCode: "NOT_FOUND", wantMsg: "not found"},
		{name: "out of stock", err: status.Error(codes.FailedPrecondition, "product is out of stock"), wantStatus: http.StatusConflict, wantCode: "FAILED_PRECONDITION", wantMsg: "product is out of stock"},
		{name: "handoff down", err: status.Error(codes.Unavailable, "order handoff failed"), wantStatus: http.StatusServiceUnavailable, wantCode: "UNAVAILABLE", wantMsg: "order handoff failed"},
		{name: "deadline", err: status.Error(codes.DeadlineExceeded, "timeout"), wantStatus: http.StatusServiceUnavailable, wantCode: "UNAVAILABLE", wantMsg: "timeout"},
		{name: "client gone", err: status.Error(codes.Canceled, "canceled"), wantStatus: 499, wantCode: "CANCELED", wantMsg: "canceled"},
		{name: "internal hides detail", err: status.Error(codes.Internal, "pq: connection refused"), wantStatus: http.StatusInternalServerError, wantCode: "INTERNAL", wantMsg: "internal error"},
		{name: "plain error", err: errors.New("boom"), wantStatus: http.StatusInternalServerError, wantCode: "INTERNAL", wantMsg: "internal error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotStatus, gotCode, gotMsg := httpStatusFromGRPC(tt.err)
			if gotStatus != tt.wantStatus || gotCode != tt.wantCode || gotMsg != tt.wantMsg {
				t.Fatalf("got (%d, %s, %q) want (%d, %s, %q)", gotStatus, gotCode, gotMsg, tt.wantStatus, tt.wantCode, tt.wantMsg)
			}
		})
	}
}

func TestRespondGRPCErrorWritesEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	respondGRPCError(c, status.Error(codes.NotFound, "not found"))

	if w.Code != http.StatusNotFound {
		t.Fatalf("status %d", w.Code)
	}
	var body errorEnvelope
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Error.Code != "NOT_FOUND" || body.Error.Message != "not found" {
		t.Fatalf("unexpected body: %+v", body)
	}
	if len(c.Errors) != 1 {
		t.Fatalf("grpc error should be attached to the context")
	}
}
