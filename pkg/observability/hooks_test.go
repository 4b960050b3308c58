package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	c := NoopCitationHooks{}
	c.OnParse(ctx, "github", nil)
	c.OnFetchStart(ctx, "github", "spf13/cobra")
	c.OnFetchComplete(ctx, "github", "spf13/cobra", true, time.Second, nil)
	c.OnFormat(ctx, "github", "spf132024cobra")

	h := NoopHTTPHooks{}
	h.OnRequest(ctx, "GET", "api.github.com", "/repos/spf13/cobra")
	h.OnResponse(ctx, "GET", "api.github.com", "/repos/spf13/cobra", 200, time.Second)
	h.OnError(ctx, "GET", "api.github.com", "/repos/spf13/cobra", nil)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()

	if _, ok := Citation().(NoopCitationHooks); !ok {
		t.Error("Citation() should return NoopCitationHooks by default")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() should return NoopHTTPHooks by default")
	}

	customCitation := &testCitationHooks{}
	SetCitationHooks(customCitation)
	if Citation() != customCitation {
		t.Error("SetCitationHooks should set custom hooks")
	}

	customHTTP := &testHTTPHooks{}
	SetHTTPHooks(customHTTP)
	if HTTP() != customHTTP {
		t.Error("SetHTTPHooks should set custom hooks")
	}

	Reset()
	if _, ok := Citation().(NoopCitationHooks); !ok {
		t.Error("Reset() should restore NoopCitationHooks")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("Reset() should restore NoopHTTPHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testCitationHooks{}
	SetCitationHooks(custom)
	SetCitationHooks(nil)

	if Citation() != custom {
		t.Error("SetCitationHooks(nil) should be ignored")
	}

	Reset()
}

type testCitationHooks struct{ NoopCitationHooks }
type testHTTPHooks struct{ NoopHTTPHooks }
