/*
Package database connects the coffeeshop to its MongoDB deployment.

It builds the srv connection string for the managed cluster, pins the Stable API and
pings the deployment before startup completes. The write acknowledgements returned
to API clients are defined here too.
*/
package database
