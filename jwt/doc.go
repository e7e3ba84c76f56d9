// Package jwt creates and verifies the signed access and refresh tokens used
// by the caffauth engine.
package jwt
