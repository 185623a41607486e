// Package http is the JSON transport: envelopes, handler adapters, the chi router and the server
package http

import (
	"encoding/json"
	stdhttp "net/http"

	pnet "chatguard/internal/platform/net"
	"chatguard/internal/platform/net/http/bind"
)

// Envelope is the body every endpoint writes
type Envelope = pnet.Wire

// Page is the paging block of list replies
type Page = pnet.Page

// JSON writes v with status as application/json
func JSON(w stdhttp.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Response is what return style handlers produce
// An error Body is written as an error envelope with its mapped status
type Response struct {
	Status int
	Body   any
	Header stdhttp.Header
	page   *Page
}

// OK is a 200 with data
func OK(data any) Response { return Response{Status: stdhttp.StatusOK, Body: data} }

// Created is a 201 with data
func Created(data any) Response { return Response{Status: stdhttp.StatusCreated, Body: data} }

// NoContent is an empty 204
func NoContent() Response { return Response{Status: stdhttp.StatusNoContent} }

// Error defers the status to the error code
func Error(err error) Response { return Response{Body: err} }

// List is a 200 carrying items and a page block
func List(items any, total, page, size int, cursor string) Response {
	return Response{
		Status: stdhttp.StatusOK,
		Body:   items,
		page:   &Page{Total: total, Page: page, PageSize: size, Cursor: cursor},
	}
}

// Handle turns a return style handler into a Handler
func Handle(fn func(*stdhttp.Request) Response) Handler {
	return func(w stdhttp.ResponseWriter, r *stdhttp.Request) { fn(r).write(w, r) }
}

func (resp Response) write(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	for k, vs := range resp.Header {
		for _, v := range vs {
			w.Header().Add(k, v)
		}
	}
	reqID := pnet.RequestID(r.Context())

	if err, ok := resp.Body.(error); ok {
		status, env := pnet.Error(err, reqID)
		JSON(w, status, env)
		return
	}

	status := resp.Status
	switch status {
	case 0:
		status = stdhttp.StatusOK
	case stdhttp.StatusNoContent:
		w.WriteHeader(status)
		return
	}
	env := pnet.Reply(status, resp.Body, reqID)
	env.Page = resp.page
	JSON(w, status, env)
}

// result turns a handler return pair into a Response
// A Response value passes through untouched
func result(out any, err error) Response {
	if err != nil {
		return Error(err)
	}
	if resp, ok := out.(Response); ok {
		return resp
	}
	return OK(out)
}

// JSONHandler decodes and validates a T body before calling fn
func JSONHandler[T any](fn func(*stdhttp.Request, T) (any, error)) Handler {
	return Handle(func(r *stdhttp.Request) Response {
		in, err := bind.ParseJSON[T](r)
		if err != nil {
			return Error(err)
		}
		return result(fn(r, in))
	})
}

// Call is JSONHandler for endpoints without a body
func Call(fn func(*stdhttp.Request) (any, error)) Handler {
	return Handle(func(r *stdhttp.Request) Response { return result(fn(r)) })
}
