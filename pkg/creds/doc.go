// Package creds implements the GitHub App credential provisioning and
// resolution subsystem.
//
// A credential bundle (app id, installation id, private key) is provisioned
// into a Vault KV v2 store by an operator, the Vault access token is
// propagated into the cluster as a Kubernetes secret, and the dashboard
// application resolves the bundle at startup from an ordered list of sources:
// process environment first, then Vault. Resolution never fails the
// application; when no source qualifies the outcome is Absent and
// credential-dependent features render a disconnected state.
package creds
