// Copyright 2024 The gojvm Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/gojvm/classfile"
	"github.com/spf13/cobra"
)

var (
	wantFields     bool
	wantMethods    bool
	wantAttributes bool
	wantPool       bool
	wantBootstrap  bool
	wantAll        bool
)

func prettyPrint(v interface{}) string {
	raw, err := json.Marshal(v)
	if err != nil {
		log.Printf("JSON marshal error: %v", err)
		return ""
	}
	var out bytes.Buffer
	if err := json.Indent(&out, raw, "", "\t"); err != nil {
		return string(raw)
	}
	return out.String()
}

func isDirectory(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

func dumpOne(filename string, cmd *cobra.Command) {
	log.Printf("processing %s", filename)

	c, err := classfile.Open(filename, classfile.Options{})
	if err != nil {
		log.Printf("error opening %s: %v", filename, err)
		return
	}

	type header struct {
		Minor, Major uint16
		Flags        uint16
		Name         string
		Super        string
		Interfaces   []string
	}
	fmt.Println(prettyPrint(header{
		Minor: c.MinorVersion, Major: c.MajorVersion, Flags: c.Flags,
		Name: c.Name, Super: c.SuperName, Interfaces: c.Interfaces,
	}))

	if wantFields || wantAll {
		fmt.Println(prettyPrint(c.Fields))
	}
	if wantMethods || wantAll {
		fmt.Println(prettyPrint(c.Methods))
	}
	if wantAttributes || wantAll {
		fmt.Println(prettyPrint(c.Attributes))
	}
	if wantBootstrap || wantAll {
		fmt.Println(prettyPrint(c.BootstrapMethods))
	}
	if wantPool || wantAll {
		fmt.Println(prettyPrint(c.ConstantPoolSnapshot()))
	}
}

func dump(cmd *cobra.Command, args []string) {
	path := args[0]
	if !isDirectory(path) {
		dumpOne(path, cmd)
		return
	}

	var files []string
	filepath.Walk(path, func(p string, info os.FileInfo, err error) error {
		if err == nil && !info.IsDir() && filepath.Ext(p) == ".class" {
			files = append(files, p)
		}
		return nil
	})
	for _, f := range files {
		dumpOne(f, cmd)
	}
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "classdump",
		Short: "A JVM class file reader",
		Long:  "classdump parses .class files and prints their structure as JSON",
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("You are using version 0.1.0")
		},
	}

	dumpCmd := &cobra.Command{
		Use:   "dump [file or directory]",
		Short: "Dumps the file",
		Long:  "Dumps the structure of a class file, or every .class file under a directory",
		Args:  cobra.MinimumNArgs(1),
		Run:   dump,
	}
	dumpCmd.Flags().BoolVarP(&wantFields, "fields", "", false, "dump fields")
	dumpCmd.Flags().BoolVarP(&wantMethods, "methods", "", false, "dump methods")
	dumpCmd.Flags().BoolVarP(&wantAttributes, "attributes", "", false, "dump class attributes")
	dumpCmd.Flags().BoolVarP(&wantBootstrap, "bootstrap", "", false, "dump bootstrap methods")
	dumpCmd.Flags().BoolVarP(&wantPool, "pool", "", false, "dump the raw constant pool")
	dumpCmd.Flags().BoolVarP(&wantAll, "all", "", false, "dump everything")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(dumpCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
