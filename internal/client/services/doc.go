// Package services contains the application services of the cmsadmin CLI.
//
// Every service talks to the API through a shared client.Client, so token
// refresh and retry are handled below this layer. Services unwrap the
// API's response envelope and return plain models.
package services
