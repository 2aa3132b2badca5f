// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package fetch_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync/atomic"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/stacklok/skillctl/fetch"
	"github.com/stacklok/skillctl/skillerr"
	"github.com/stacklok/skillctl/validation/content"
	"github.com/stacklok/skillctl/validation/urlguard"
	"github.com/stacklok/skillctl/version"
)

// localURL addresses a test server through the development http exception.
func localURL(s *httptest.Server) string {
	return strings.Replace(s.URL, "127.0.0.1", "localhost", 1)
}

type countingTransport struct {
	calls atomic.Int32
}

func (c *countingTransport) RoundTrip(*http.Request) (*http.Response, error) {
	c.calls.Add(1)
	return nil, errors.New("unexpected network call")
}

var _ = Describe("Client", func() {
	var (
		client     *fetch.Client
		mockServer *httptest.Server
		ctx        context.Context
	)

	BeforeEach(func() {
		ctx = context.Background()
		var err error
		client, err = fetch.NewClient()
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		if mockServer != nil {
			mockServer.Close()
			mockServer = nil
		}
	})

	Describe("NewClient", func() {
		It("should reject a user agent with control characters", func() {
			_, err := fetch.NewClient(fetch.WithUserAgent("skillctl\r\nX-Injected: 1"))
			Expect(err).To(HaveOccurred())
			Expect(skillerr.KindOf(err)).To(Equal(skillerr.KindValidation))
		})
	})

	Describe("Download", func() {
		Context("Successful requests", func() {
			It("should return the body and identify itself", func() {
				mockServer = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					Expect(r.Header.Get("User-Agent")).To(Equal(version.UserAgent()))
					w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
					_, _ = w.Write([]byte("---\nname: auth-helper\n---\n# Auth helper\n"))
				}))

				text, err := client.Download(ctx, localURL(mockServer)+"/SKILL.md")
				Expect(err).NotTo(HaveOccurred())
				Expect(text).To(ContainSubstring("# Auth helper"))
			})

			It("should accept a response without a Content-Type header", func() {
				mockServer = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
					w.Header()["Content-Type"] = nil
					_, _ = w.Write([]byte("plain body"))
				}))

				text, err := client.Download(ctx, localURL(mockServer))
				Expect(err).NotTo(HaveOccurred())
				Expect(text).To(Equal("plain body"))
			})

			It("should follow up to five redirects", func() {
				mockServer = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					n, _ := strconv.Atoi(strings.TrimPrefix(r.URL.Path, "/hop/"))
					if n > 0 {
						http.Redirect(w, r, fmt.Sprintf("/hop/%d", n-1), http.StatusFound)
						return
					}
					w.Header().Set("Content-Type", "text/plain")
					_, _ = w.Write([]byte("arrived"))
				}))

				text, err := client.Download(ctx, localURL(mockServer)+"/hop/5")
				Expect(err).NotTo(HaveOccurred())
				Expect(text).To(Equal("arrived"))
			})
		})

		Context("Guarded URLs", func() {
			It("should reject a metadata endpoint before any network call", func() {
				transport := &countingTransport{}
				guarded, err := fetch.NewClient(fetch.WithTransport(transport))
				Expect(err).NotTo(HaveOccurred())

				_, err = guarded.Download(ctx, "https://169.254.169.254/latest/meta-data/")
				Expect(err).To(MatchError(urlguard.ErrMetadataBlocked))
				Expect(skillerr.KindOf(err)).To(Equal(skillerr.KindValidation))
				Expect(transport.calls.Load()).To(BeZero())
			})

			It("should reject a private address", func() {
				_, err := client.Download(ctx, "https://192.168.1.1/test")
				Expect(err).To(MatchError(urlguard.ErrPrivateAddressBlocked))
			})

			It("should reject a redirect to a host outside the allowlist", func() {
				mockServer = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					http.Redirect(w, r, "https://evil.example.com/SKILL.md", http.StatusFound)
				}))

				_, err := client.Download(ctx, localURL(mockServer))
				Expect(err).To(MatchError(urlguard.ErrHostNotAllowed))
				Expect(skillerr.KindOf(err)).To(Equal(skillerr.KindValidation))
			})

			It("should stop after too many redirects", func() {
				mockServer = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					http.Redirect(w, r, "/loop", http.StatusFound)
				}))

				_, err := client.Download(ctx, localURL(mockServer)+"/loop")
				Expect(err).To(MatchError(fetch.ErrTooManyRedirects))
				Expect(skillerr.KindOf(err)).To(Equal(skillerr.KindNetwork))
			})
		})

		Context("HTTP error responses", func() {
			It("should return an HTTPError for 404 Not Found", func() {
				mockServer = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
					w.WriteHeader(http.StatusNotFound)
				}))

				_, err := client.Download(ctx, localURL(mockServer))
				var httpErr *fetch.HTTPError
				Expect(errors.As(err, &httpErr)).To(BeTrue())
				Expect(httpErr.StatusCode).To(Equal(http.StatusNotFound))
				Expect(err.Error()).To(ContainSubstring("HTTP 404"))
				Expect(skillerr.KindOf(err)).To(Equal(skillerr.KindNetwork))
			})

			It("should reject a non-text content type", func() {
				mockServer = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
					w.Header().Set("Content-Type", "application/octet-stream")
					_, _ = w.Write([]byte("data"))
				}))

				_, err := client.Download(ctx, localURL(mockServer))
				Expect(err).To(MatchError(fetch.ErrUnexpectedContentType))
				Expect(skillerr.KindOf(err)).To(Equal(skillerr.KindNetwork))
			})
		})

		Context("Response body handling", func() {
			It("should fail fast on an oversized Content-Length", func() {
				mockServer = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
					w.Header().Set("Content-Type", "text/plain")
					w.Header().Set("Content-Length", strconv.Itoa(content.MaxSize+1))
					w.WriteHeader(http.StatusOK)
				}))

				_, err := client.Download(ctx, localURL(mockServer))
				Expect(err).To(MatchError(fetch.ErrTooLarge))
			})

			It("should reject an oversized body regardless of headers", func() {
				mockServer = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
					w.Header().Set("Content-Type", "text/plain")
					w.WriteHeader(http.StatusOK)
					_, _ = w.Write([]byte(strings.Repeat("A", content.MaxSize+1)))
				}))

				_, err := client.Download(ctx, localURL(mockServer))
				Expect(err).To(MatchError(content.ErrTooLarge))
				Expect(skillerr.KindOf(err)).To(Equal(skillerr.KindValidation))
			})

			It("should reject binary content", func() {
				mockServer = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
					w.Header().Set("Content-Type", "text/plain")
					_, _ = w.Write([]byte("abc\x00def"))
				}))

				_, err := client.Download(ctx, localURL(mockServer))
				Expect(err).To(MatchError(content.ErrBinaryContent))
			})
		})

		Context("Context cancellation", func() {
			It("should report a cancelled context", func() {
				mockServer = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
					w.WriteHeader(http.StatusOK)
				}))
				cancelCtx, cancel := context.WithCancel(ctx)
				cancel()

				_, err := client.Download(cancelCtx, localURL(mockServer))
				Expect(err).To(HaveOccurred())
				Expect(skillerr.KindOf(err)).To(Equal(skillerr.KindCancelled))
			})
		})
	})
})
