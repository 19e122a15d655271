package chat

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"kone-backend/internal/models"
)

func chatServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s", r.Method)
		}
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestSendParsesObjectReply(t *testing.T) {
	srv := chatServer(t, http.StatusOK, `{"output":"재고가 충분합니다."}`)
	c := New(srv.URL, zap.NewNop())

	reply := c.Send(context.Background(), models.ChatRequest{Message: "hi", SessionID: "s1"})
	if reply.IsError || reply.Content != "재고가 충분합니다." {
		t.Fatalf("reply = %+v", reply)
	}
}

func TestSendParsesArrayReply(t *testing.T) {
	srv := chatServer(t, http.StatusOK, `[{"response":"첫 번째 답변"}]`)
	c := New(srv.URL, zap.NewNop())

	reply := c.Send(context.Background(), models.ChatRequest{Message: "hi", SessionID: "s1"})
	if reply.IsError || reply.Content != "첫 번째 답변" {
		t.Fatalf("reply = %+v", reply)
	}
}

func TestSendEmptyReplyFallsBackToPlaceholder(t *testing.T) {
	srv := chatServer(t, http.StatusOK, `{}`)
	c := New(srv.URL, zap.NewNop())

	reply := c.Send(context.Background(), models.ChatRequest{Message: "hi"})
	if reply.IsError || reply.Content != emptyReply {
		t.Fatalf("reply = %+v", reply)
	}
}

func TestSendServerErrorYieldsApology(t *testing.T) {
	srv := chatServer(t, http.StatusBadGateway, `upstream down`)
	c := New(srv.URL, zap.NewNop())

	reply := c.Send(context.Background(), models.ChatRequest{Message: "hi"})
	if !reply.IsError || reply.Content != failureReply {
		t.Fatalf("reply = %+v", reply)
	}
}

func TestSendUnconfiguredYieldsApology(t *testing.T) {
	c := New("", zap.NewNop())
	reply := c.Send(context.Background(), models.ChatRequest{Message: "hi"})
	if !reply.IsError {
		t.Fatalf("reply = %+v", reply)
	}
}
