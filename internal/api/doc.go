// Package api provides the Ze Partners REST API.
package api
