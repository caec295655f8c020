package clientv2

import (
	"fmt"
	"net/http"
	"net/http/httputil"

	"github.com/opensandbox/sandbox-go/internal/env"
	"github.com/opensandbox/sandbox-go/internal/log"
)

var (
	printRequest  *bool = nil
	printResponse *bool = nil
)

func PrintRequest(isPrint bool) {
	printRequest = &isPrint
}

func IsPrintRequest() bool {
	if printRequest != nil {
		return *printRequest
	}
	return env.DebugFromEnvironment()
}

func PrintResponse(isPrint bool) {
	printResponse = &isPrint
}

func IsPrintResponse() bool {
	if printResponse != nil {
		return *printResponse
	}
	return env.DebugFromEnvironment()
}

type debugInterceptor struct {
}

func newDebugInterceptor() Interceptor {
	return &debugInterceptor{}
}

func (r *debugInterceptor) Priority() InterceptorPriority {
	return InterceptorPriorityDebug
}

func (r *debugInterceptor) Intercept(req *http.Request, handler Handler) (*http.Response, error) {
	label := r.requestLabel(req)

	if e := r.printRequest(label, req); e != nil {
		return nil, e
	}

	resp, err := handler(req)

	if e := r.printResponse(label, resp); e != nil {
		return nil, e
	}

	return resp, err
}

func (r *debugInterceptor) requestLabel(req *http.Request) string {
	if req == nil || req.URL == nil {
		return ""
	}
	return fmt.Sprintf("Url:%s", req.URL.String())
}

func (r *debugInterceptor) printRequest(label string, req *http.Request) error {
	if !IsPrintRequest() {
		return nil
	}

	info := label + " request:\n"
	i, dErr := httputil.DumpRequest(req, false)
	if dErr != nil {
		return dErr
	}
	info += string(i) + "\n"

	log.Dump(info)
	return nil
}

func (r *debugInterceptor) printResponse(label string, resp *http.Response) error {
	if resp == nil || !IsPrintResponse() {
		return nil
	}

	info := label + " response:\n"
	i, dErr := httputil.DumpResponse(resp, false)
	if dErr != nil {
		return dErr
	}
	info += string(i) + "\n"

	log.Dump(info)
	return nil
}
