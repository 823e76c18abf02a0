package model

// Package model defines domain data structures used across the app: conversion
// tasks, media kinds, ffprobe info, and the conversion settings bundle.
// Structures are designed for direct binding in the UI and explicit state
// transitions.
