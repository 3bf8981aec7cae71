package bindtest

//go:generate go run ../../cmd/jsbind -o . bindtest.yaml
